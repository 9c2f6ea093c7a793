package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicore/account-system/internal/api"
	"github.com/clinicore/account-system/internal/core/service"
	"github.com/clinicore/account-system/internal/infrastructure/config"
	mongodb "github.com/clinicore/account-system/internal/infrastructure/db/mongo"
	"github.com/clinicore/account-system/internal/infrastructure/db/postgres"
	redisdb "github.com/clinicore/account-system/internal/infrastructure/db/redis"
	"github.com/clinicore/account-system/internal/infrastructure/queue"
	"github.com/clinicore/account-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "accounts-api"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "accounts-api",
	})

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	migrator := postgres.NewMigrator(cfg.Postgres.DSN, cfg.Postgres.MigrationsDir, log)
	if err := migrator.Up(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), mongoClient); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	auditRepo := mongodb.NewAuditRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure audit indexes")
	}

	auditDispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	auditDispatcher.Start(ctx)

	sessionStore := redisdb.NewSessionStore(rdb)
	sessions := service.NewSessionService(sessionStore, cfg.JWTSecret, cfg.TokenTTL)

	userRepo := postgres.NewUserRepository(pool)
	uow := postgres.NewUnitOfWork(pool)
	users := service.NewUserService(userRepo, uow, sessions, auditDispatcher, log)

	router := api.NewRouter(api.Deps{
		Users:    users,
		Sessions: sessions,
		Pool:     pool,
		Redis:    rdb,
		Mongo:    mongoDB,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
		log.Info().Msg("account server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}
}

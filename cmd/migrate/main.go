package main

import (
	"context"
	"flag"
	"time"

	"github.com/clinicore/account-system/internal/infrastructure/config"
	"github.com/clinicore/account-system/internal/infrastructure/db/postgres"
	"github.com/clinicore/account-system/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "accounts-migrate"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "accounts-migrate",
	})

	migrator := postgres.NewMigrator(cfg.Postgres.DSN, cfg.Postgres.MigrationsDir, log)

	switch *command {
	case "up":
		err = migrator.Up(ctx)
	case "status":
		err = migrator.Status(ctx)
	case "down":
		err = migrator.Down(ctx)
	default:
		log.Fatal().Str("command", *command).Msg("unsupported command")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration command failed")
	}

	log.Info().Str("command", *command).Msg("migration command completed")
}

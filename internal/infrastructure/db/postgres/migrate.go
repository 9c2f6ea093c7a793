package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

const migrateTimeout = time.Minute

// Migrator applies goose SQL migrations from a directory.
type Migrator struct {
	dsn string
	dir string
	log zerolog.Logger
}

func NewMigrator(dsn, dir string, log zerolog.Logger) *Migrator {
	return &Migrator{dsn: dsn, dir: dir, log: log}
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		defer cancel()

		m.log.Info().Str("dir", m.dir).Msg("applying migrations")
		if err := goose.UpContext(runCtx, db, m.dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		m.log.Info().Msg("migrations applied")
		return nil
	})
}

// Status prints applied and pending migrations.
func (m *Migrator) Status(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		return goose.StatusContext(ctx, db, m.dir)
	})
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.withDB(func(db *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		defer cancel()
		return goose.DownContext(runCtx, db, m.dir)
	})
}

func (m *Migrator) withDB(fn func(*sql.DB) error) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sql connection: %w", err)
	}
	return fn(db)
}

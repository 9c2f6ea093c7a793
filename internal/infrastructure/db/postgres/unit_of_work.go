package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/account-system/internal/core/ports"
)

// UnitOfWork runs a function against transaction-scoped repositories. Within
// the transaction the user row is visible to the association insert; on any
// error the whole set rolls back, so no orphan accounts survive a failed
// registration.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Do(ctx context.Context, fn func(repos ports.TxRepositories) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.TxRepositories{
		Users:     NewUserRepository(tx),
		Roles:     NewRoleRepository(tx),
		UserRoles: NewUserRoleRepository(tx),
		Patients:  NewPatientRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

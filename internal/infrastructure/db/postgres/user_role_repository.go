package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// UserRoleRepository persists user-role associations. Associations are
// created once, inside the account-creation transaction.
type UserRoleRepository struct {
	db DB
}

func NewUserRoleRepository(db DB) *UserRoleRepository {
	return &UserRoleRepository{db: db}
}

var _ ports.UserRoleRepository = (*UserRoleRepository)(nil)

func (r *UserRoleRepository) Create(ctx context.Context, assoc *domain.UserRole) error {
	const query = `INSERT INTO user_roles (user_id, role_id, is_primary)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRow(ctx, query, assoc.UserID, assoc.RoleID, assoc.IsPrimary).Scan(&assoc.ID); err != nil {
		return fmt.Errorf("insert user role: %w", err)
	}
	return nil
}

func (r *UserRoleRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.UserRole, error) {
	const query = `SELECT id, user_id, role_id, is_primary FROM user_roles WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()

	var out []domain.UserRole
	for rows.Next() {
		var ur domain.UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		out = append(out, ur)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// RoleRepository reads the role registry. Roles are seeded by migrations and
// owned by a separate role-management collaborator.
type RoleRepository struct {
	db DB
}

func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

func (r *RoleRepository) FindByCode(ctx context.Context, code string) (*domain.Role, error) {
	const query = `SELECT id, code, name FROM roles WHERE code = $1`

	var role domain.Role
	if err := r.db.QueryRow(ctx, query, code).Scan(&role.ID, &role.Code, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRoleNotConfigured
		}
		return nil, fmt.Errorf("find role %q: %w", code, err)
	}
	return &role, nil
}

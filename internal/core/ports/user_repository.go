package ports

import (
	"context"

	"github.com/clinicore/account-system/internal/core/domain"
)

// UserRepository is the account store. Create relies on the store's unique
// constraint on username and maps its violation to ErrDuplicateUsername; the
// service-level pre-check is only a fast fail.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.UserFilter, page, pageSize int) (*domain.Page[domain.User], error)
}

// RoleRepository resolves symbolic role codes against the role registry,
// which is owned by a separate role-management collaborator.
type RoleRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Role, error)
}

// UserRoleRepository persists user-role associations.
type UserRoleRepository interface {
	Create(ctx context.Context, assoc *domain.UserRole) error
	FindByUserID(ctx context.Context, userID int64) ([]domain.UserRole, error)
}

// PatientRepository is the patient-profile collaborator, used only by the
// patient registration path.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
}

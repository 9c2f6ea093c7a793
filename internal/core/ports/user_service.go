package ports

import (
	"context"

	"github.com/clinicore/account-system/internal/core/domain"
)

// RegisterInput carries the fields of a self-service registration.
type RegisterInput struct {
	Username string
	Password string
	RealName string
	Phone    string
	Email    string
}

// RegisterPatientInput additionally creates a linked patient profile.
type RegisterPatientInput struct {
	RegisterInput
	Gender int
	Age    int
}

// CreateUserInput is the administrative create: the role classifier is
// caller-supplied instead of fixed to the patient role.
type CreateUserInput struct {
	Username string
	Password string
	RealName string
	Role     int
	Phone    string
	Email    string
}

// UpdateUserInput overwrites identity fields on an existing user. A nil Role
// leaves the classifier untouched.
type UpdateUserInput struct {
	RealName string
	Phone    string
	Email    string
	Role     *int
}

// UpdateProfileInput overwrites profile fields on the caller's own record.
type UpdateProfileInput struct {
	RealName  string
	Phone     string
	Email     string
	Title     string
	Specialty string
	Avatar    string
}

// UserService is the identity lifecycle orchestrator. Operations that act on
// "the current caller" take the caller id explicitly; the API layer resolves
// it once per request through the SessionAuthority.
type UserService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error

	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	RegisterPatient(ctx context.Context, input RegisterPatientInput) (*domain.User, error)
	CreateUser(ctx context.Context, callerID int64, input CreateUserInput) (*domain.User, error)

	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, filter domain.UserFilter, page, pageSize int) (*domain.Page[domain.User], error)

	UpdateUser(ctx context.Context, callerID, targetID int64, input UpdateUserInput) error
	UpdateProfile(ctx context.Context, callerID int64, input UpdateProfileInput) error
	DeleteUser(ctx context.Context, callerID, targetID int64) error

	ResetPassword(ctx context.Context, callerID, targetID int64, newPassword string) error
	ChangePassword(ctx context.Context, callerID int64, oldPassword, newPassword string) error
	UpdateStatus(ctx context.Context, callerID, targetID int64, status int) error
}

package domain

import (
	"errors"
	"time"
)

// Role classifiers stored on the User record. They drive the default
// role-association created at account-creation time.
const (
	RoleAdmin  = 0
	RoleDoctor = 1
	RoleUser   = 2
)

// Account status values.
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// Role codes as stored in the role registry.
const (
	RoleCodeAdmin  = "ROLE_ADMIN"
	RoleCodeDoctor = "ROLE_DOCTOR"
	RoleCodeUser   = "ROLE_USER"
)

// roleCodes maps a role classifier to its registry code.
var roleCodes = map[int]string{
	RoleAdmin:  RoleCodeAdmin,
	RoleDoctor: RoleCodeDoctor,
	RoleUser:   RoleCodeUser,
}

// RoleCodeFor resolves the role code for a classifier. Unknown classifiers
// fall back to ROLE_USER, so the mapping is total.
func RoleCodeFor(role int) string {
	if code, ok := roleCodes[role]; ok {
		return code
	}
	return RoleCodeUser
}

var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWrongOldPassword = errors.New("old password is incorrect")
var ErrAccountDisabled = errors.New("account is disabled")
var ErrSelfDeleteForbidden = errors.New("cannot delete the current account")
var ErrSelfDisableForbidden = errors.New("cannot disable the current account")
var ErrRoleNotConfigured = errors.New("role is not configured")
var ErrUnauthenticated = errors.New("not authenticated")

// User is the identity record owned by the account store.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RealName     string    `json:"real_name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Role         int       `json:"role"`
	Status       int       `json:"status"`
	Title        string    `json:"title,omitempty"`
	Specialty    string    `json:"specialty,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Enabled reports whether the account may authenticate.
func (u *User) Enabled() bool {
	return u.Status == StatusEnabled
}

// Role is a registry entry mapping a symbolic code to a stored identifier.
// Read-only from this subsystem's perspective.
type Role struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// UserRole links a user to a role. Every user gets exactly one association
// flagged primary, created in the same transaction as the user row.
type UserRole struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	RoleID    int64 `json:"role_id"`
	IsPrimary bool  `json:"is_primary"`
}

// UserFilter narrows a user listing. Username and RealName are substring
// matches, Role is exact.
type UserFilter struct {
	Username string
	RealName string
	Role     *int
}

// Page is a single page of a listing, most recent first.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

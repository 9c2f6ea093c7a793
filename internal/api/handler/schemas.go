package handler

import "github.com/clinicore/account-system/internal/core/domain"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=64"`
	Password string `json:"password"  validate:"required,min=6"`
	RealName string `json:"real_name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"     validate:"omitempty,email"`
}

type registerPatientRequest struct {
	registerRequest
	Gender int `json:"gender" validate:"oneof=0 1"`
	Age    int `json:"age"    validate:"gte=0,lte=150"`
}

type createUserRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=64"`
	Password string `json:"password"  validate:"required,min=6"`
	RealName string `json:"real_name" validate:"required"`
	Role     int    `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"     validate:"omitempty,email"`
}

type updateUserRequest struct {
	RealName string `json:"real_name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"     validate:"omitempty,email"`
	Role     *int   `json:"role"`
}

type updateProfileRequest struct {
	RealName  string `json:"real_name" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Title     string `json:"title"`
	Specialty string `json:"specialty"`
	Avatar    string `json:"avatar"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type updateStatusRequest struct {
	Status *int `json:"status" validate:"required,oneof=0 1"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

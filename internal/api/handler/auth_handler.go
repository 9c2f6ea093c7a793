package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/api/metrics"
	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// AuthHandler adapts login, logout and the self-service registration paths.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login authenticates by username and password and returns a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	token, user, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout invalidates the presented session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.users.Logout(c.Request().Context(), bearerToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Register creates a self-service account with the default patient role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		RealName: req.RealName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("self").Inc()

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// RegisterPatient creates a patient account together with its linked patient
// profile.
func (h *AuthHandler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.RegisterPatient(c.Request().Context(), ports.RegisterPatientInput{
		RegisterInput: ports.RegisterInput{
			Username: req.Username,
			Password: req.Password,
			RealName: req.RealName,
			Phone:    req.Phone,
			Email:    req.Email,
		},
		Gender: req.Gender,
		Age:    req.Age,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("patient").Inc()

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "error"
	}
}

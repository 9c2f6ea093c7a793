package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/api/metrics"
	"github.com/clinicore/account-system/internal/core/ports"
)

// ProfileHandler adapts the operations a user performs on their own record.
type ProfileHandler struct {
	users ports.UserService
}

func NewProfileHandler(users ports.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Me returns the caller's own record.
func (h *ProfileHandler) Me(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update overwrites profile fields on the caller's own record.
func (h *ProfileHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.users.UpdateProfile(c.Request().Context(), caller, ports.UpdateProfileInput{
		RealName:  req.RealName,
		Phone:     req.Phone,
		Email:     req.Email,
		Title:     req.Title,
		Specialty: req.Specialty,
		Avatar:    req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword replaces the caller's password after verifying the old one.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), caller, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	metrics.PasswordUpdatesTotal.WithLabelValues("change").Inc()

	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/api/metrics"
	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// UserHandler adapts the administrative account operations.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns a filtered page of users, most recently created first.
func (h *UserHandler) List(c echo.Context) error {
	filter := domain.UserFilter{
		Username: c.QueryParam("username"),
		RealName: c.QueryParam("real_name"),
	}
	if raw := c.QueryParam("role"); raw != "" {
		role, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "role must be an integer")
		}
		filter.Role = &role
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	result, err := h.users.ListUsers(c.Request().Context(), filter, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns a single user by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create is the administrative account creation with a caller-supplied role.
func (h *UserHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.CreateUser(c.Request().Context(), caller, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		RealName: req.RealName,
		Role:     req.Role,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("admin").Inc()

	return c.JSON(http.StatusCreated, user)
}

// Update overwrites identity fields on an existing user.
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.users.UpdateUser(c.Request().Context(), caller, id, ports.UpdateUserInput{
		RealName: req.RealName,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account. Self-deletion is rejected by the service.
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(c.Request().Context(), caller, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword stores a new password on behalf of another user.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ResetPassword(c.Request().Context(), caller, id, req.NewPassword); err != nil {
		return err
	}
	metrics.PasswordUpdatesTotal.WithLabelValues("reset").Inc()

	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus enables or disables an account.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.UpdateStatus(c.Request().Context(), caller, id, *req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

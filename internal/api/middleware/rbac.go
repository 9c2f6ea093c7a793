package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/core/ports"
)

// RBAC gates a route to the given role classifiers. The caller's record is
// re-read on every request so role changes take effect without re-login.
func RBAC(users ports.UserService, allowedRoles ...int) echo.MiddlewareFunc {
	allowed := make(map[int]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(int64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			user, err := users.GetUser(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

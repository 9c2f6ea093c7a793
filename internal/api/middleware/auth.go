package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxToken  = "token"
)

// Auth resolves the bearer token through the session authority and injects
// the caller's user id into the request context. Revoked and expired
// sessions are rejected even when the token signature is still valid.
func Auth(sessions ports.SessionAuthority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := sessions.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(CtxUserID, userID)
			c.Set(CtxToken, parts[1])

			return next(c)
		}
	}
}

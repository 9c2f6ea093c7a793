package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/api/middleware"
)

// callerID extracts the caller identity injected by the Auth middleware. The
// session is resolved exactly once at the boundary; handlers pass the id to
// the service explicitly.
func callerID(c echo.Context) (int64, error) {
	id, ok := c.Get(middleware.CtxUserID).(int64)
	if !ok || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bearerToken returns the raw token captured by the Auth middleware.
func bearerToken(c echo.Context) string {
	token, _ := c.Get(middleware.CtxToken).(string)
	return token
}

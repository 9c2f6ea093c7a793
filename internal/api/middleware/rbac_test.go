package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

// stubUserService implements only GetUser; the RBAC middleware touches
// nothing else.
type stubUserService struct {
	ports.UserService
	user *domain.User
	err  error
}

func (s *stubUserService) GetUser(_ context.Context, _ int64) (*domain.User, error) {
	return s.user, s.err
}

func rbacContext(t *testing.T, userID any) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set(CtxUserID, userID)
	}
	return c, rec, e
}

func TestRBAC_AllowsMatchingRole(t *testing.T) {
	svc := &stubUserService{user: &domain.User{ID: 1, Role: domain.RoleAdmin}}
	c, rec, _ := rbacContext(t, int64(1))

	called := false
	handler := RBAC(svc, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsOtherRole(t *testing.T) {
	svc := &stubUserService{user: &domain.User{ID: 2, Role: domain.RoleUser}}
	c, rec, e := rbacContext(t, int64(2))

	handler := RBAC(svc, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_MissingAuthentication(t *testing.T) {
	svc := &stubUserService{user: &domain.User{ID: 3, Role: domain.RoleAdmin}}
	c, rec, e := rbacContext(t, nil)

	handler := RBAC(svc, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRBAC_UnknownAccount(t *testing.T) {
	svc := &stubUserService{err: domain.ErrAccountNotFound}
	c, rec, e := rbacContext(t, int64(4))

	handler := RBAC(svc, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

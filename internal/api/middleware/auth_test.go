package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/account-system/internal/core/domain"
)

type stubSessions struct {
	tokens map[string]int64
}

func (s *stubSessions) Issue(_ context.Context, _ int64) (string, error) { return "", nil }

func (s *stubSessions) Resolve(_ context.Context, token string) (int64, error) {
	id, ok := s.tokens[token]
	if !ok {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}

func (s *stubSessions) Invalidate(_ context.Context, _ string) error    { return nil }
func (s *stubSessions) InvalidateAll(_ context.Context, _ int64) error  { return nil }

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{tokens: map[string]int64{"good-token": 42}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(sessions)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != int64(42) {
			t.Fatalf("user id not set: %v", c.Get(CtxUserID))
		}
		if c.Get(CtxToken) != "good-token" {
			t.Fatalf("token not set: %v", c.Get(CtxToken))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(&stubSessions{})(func(c echo.Context) error {
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

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(&stubSessions{})(func(c echo.Context) error {
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

func TestAuthMiddleware_RevokedSession(t *testing.T) {
	e := echo.New()
	sessions := &stubSessions{tokens: map[string]int64{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(sessions)(func(c echo.Context) error {
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

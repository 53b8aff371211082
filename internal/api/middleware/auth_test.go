package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

type stubAuthService struct {
	user      *domain.User
	err       error
	seenToken string
}

func (s *stubAuthService) Signup(context.Context, string, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.TokenPair, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Refresh(context.Context, string) (*ports.TokenPair, error) {
	panic("not used")
}

func (s *stubAuthService) ConfirmEmail(context.Context, string) error {
	panic("not used")
}

func (s *stubAuthService) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	s.seenToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{user: &domain.User{ID: 7, Email: "alice@example.com"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(auth)
	handler := mw(func(c echo.Context) error {
		called = true
		user, ok := c.Get(CurrentUserKey).(*domain.User)
		if !ok {
			t.Fatalf("current user not set")
		}
		if user.Email != "alice@example.com" {
			t.Fatalf("wrong user: %q", user.Email)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if auth.seenToken != "tok-123" {
		t.Fatalf("token not forwarded, got %q", auth.seenToken)
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

	mw := Auth(&stubAuthService{})
	handler := mw(func(c echo.Context) error {
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

	mw := Auth(&stubAuthService{})
	handler := mw(func(c echo.Context) error {
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

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(&stubAuthService{err: domain.ErrInvalidToken})
	handler := mw(func(c echo.Context) error {
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

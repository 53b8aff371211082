package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

type stubUserService struct {
	updateAvatarFn func(ctx context.Context, email, url string) (*domain.User, error)
}

func (s *stubUserService) UpdateAvatar(ctx context.Context, email, url string) (*domain.User, error) {
	return s.updateAvatarFn(ctx, email, url)
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, rec := authedContext(e, http.MethodGet, "/api/users/me", "")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "owner@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("credential material must never render")
	}
}

func TestUserHandler_UpdateAvatar_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateAvatarFn: func(ctx context.Context, email, url string) (*domain.User, error) {
			if email != "owner@example.com" {
				t.Fatalf("avatar update not scoped to caller: %q", email)
			}
			return &domain.User{ID: 42, Email: email, Avatar: url}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := authedContext(e, http.MethodPatch, "/api/users/avatar",
		`{"url":"https://cdn.example.com/a.png"}`)

	if err := h.UpdateAvatar(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["avatar"] != "https://cdn.example.com/a.png" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_UpdateAvatar_BadURL(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := authedContext(e, http.MethodPatch, "/api/users/avatar", `{"url":"not a url"}`)

	err := h.UpdateAvatar(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

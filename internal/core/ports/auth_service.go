package ports

import (
	"context"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// TokenPair is the access/refresh token pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

type AuthService interface {
	// Signup registers a new account. The email starts unconfirmed.
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and issues a fresh token pair. Accounts
	// with an unconfirmed email are rejected.
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh rotates the token pair; the presented refresh token must match
	// the one stored on the account.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// ConfirmEmail consumes a confirmation token and marks the email confirmed.
	ConfirmEmail(ctx context.Context, confirmToken string) error
	// CurrentUser resolves a bearer access token to its account.
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// GetByEmail returns the user or domain.ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user and returns it with the assigned id.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRefreshToken stores the user's current refresh token; nil clears it.
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	// ConfirmEmail flips the confirmed flag for the given email.
	ConfirmEmail(ctx context.Context, email string) error
	// UpdateAvatar replaces the avatar URL and returns the updated user.
	UpdateAvatar(ctx context.Context, email, url string) (*domain.User, error)
}

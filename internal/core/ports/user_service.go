package ports

import (
	"context"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

type UserService interface {
	// UpdateAvatar replaces the avatar URL on the account identified by email.
	UpdateAvatar(ctx context.Context, email, url string) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// UserCache is a read-through cache for resolved accounts, keyed by email.
// Get returns (nil, nil) on a miss.
type UserCache interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	// Invalidate drops the cached entry after a mutation of the account.
	Invalidate(ctx context.Context, email string) error
}

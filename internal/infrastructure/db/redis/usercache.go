package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

const userCacheTTL = 15 * time.Minute

// UserCache caches resolved accounts between requests so the auth middleware
// does not hit the database on every call. Entries expire after
// userCacheTTL and are dropped eagerly on account mutations.
type UserCache struct {
	client *redis.Client
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached account or (nil, nil) on a miss.
func (c *UserCache) Get(ctx context.Context, email string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		// A corrupt entry behaves like a miss; it will be overwritten.
		return nil, nil
	}
	return &user, nil
}

func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("user cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(user.Email), raw, userCacheTTL).Err()
}

func (c *UserCache) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *UserCache) key(email string) string {
	return "user:" + email
}

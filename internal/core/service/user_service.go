package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// UserService implements account profile mutations.
type UserService struct {
	users  ports.UserRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, logger: logger}
}

// UpdateAvatar replaces the avatar URL and drops the cached account entry so
// the next request observes the change.
func (s *UserService) UpdateAvatar(ctx context.Context, email, url string) (*domain.User, error) {
	user, err := s.users.UpdateAvatar(ctx, email, url)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("user cache invalidation failed")
		}
	}
	s.logger.Info().Str("email", email).Msg("avatar updated")
	return user, nil
}

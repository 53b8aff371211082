package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// Token scopes distinguish the three token kinds issued by the service.
const (
	scopeAccess  = "access_token"
	scopeRefresh = "refresh_token"
	scopeConfirm = "email_confirm"
)

// AuthService implements signup, login, token refresh and email confirmation.
type AuthService struct {
	users      ports.UserRepository
	cache      ports.UserCache
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, cache ports.UserCache, jwtSecret string, accessTTL, refreshTTL time.Duration, logger zerolog.Logger) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		cache:      cache,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

type claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Signup registers a new account with an unconfirmed email and a
// gravatar-style avatar derived from the address. The confirmation token is
// logged in place of an outbound email.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       gravatarURL(email),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	confirmToken, err := s.signToken(email, scopeConfirm, s.refreshTTL, "")
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", email).Str("confirm_token", confirmToken).Msg("user registered, confirmation pending")

	return created, nil
}

// Login verifies the credentials and issues a fresh token pair. The refresh
// token is stored on the account so that Refresh can reject stale tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, nil, domain.ErrEmailNotConfirmed
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh validates the presented refresh token against the one stored on
// the account and rotates the pair. A mismatch clears the stored token so a
// leaked stale token cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	email, err := s.parseToken(refreshToken, scopeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.users.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidToken
	}

	return s.issuePair(ctx, user)
}

// ConfirmEmail consumes a confirmation token and marks the account confirmed.
// Confirming twice is harmless.
func (s *AuthService) ConfirmEmail(ctx context.Context, confirmToken string) error {
	email, err := s.parseToken(confirmToken, scopeConfirm)
	if err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Confirmed {
		return nil
	}

	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, email)
	}
	return nil
}

// CurrentUser resolves a bearer access token to its account, reading through
// the user cache when one is configured.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	email, err := s.parseToken(accessToken, scopeAccess)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if user, err := s.cache.Get(ctx, email); err == nil && user != nil {
			return user, nil
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("user cache write failed")
		}
	}
	return user, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.signToken(user.Email, scopeAccess, s.accessTTL, "")
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user.Email, scopeRefresh, s.refreshTTL, uuid.NewString())
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, err
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) signToken(email, scope string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		Scope: scope,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.jwtSecret)
}

// parseToken validates signature, expiry and scope, and returns the subject
// email.
func (s *AuthService) parseToken(tokenString, wantScope string) (string, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}
	if c.Scope != wantScope || c.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return c.Subject, nil
}

// gravatarURL derives the avatar location from the md5 of the normalized
// email address.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

const userColumns = "id, username, email, password_hash, confirmed, avatar, refresh_token, created_at"

// pgUniqueViolation is the PostgreSQL error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// UserRepository persists user accounts.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, email, password_hash, confirmed, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Confirmed,
		nullString(user.Avatar), user.CreatedAt)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, nullStringPtr(token), userID)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	return requireRow(res, "update refresh token")
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	query := `UPDATE users SET confirmed = TRUE WHERE email = $1`

	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	return requireRow(res, "confirm email")
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*domain.User, error) {
	query := `UPDATE users SET avatar = $1 WHERE email = $2 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, url, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return user, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u            domain.User
		avatar       sql.NullString
		refreshToken sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Confirmed,
		&avatar, &refreshToken, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Avatar = avatar.String
	if refreshToken.Valid {
		t := refreshToken.String
		u.RefreshToken = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

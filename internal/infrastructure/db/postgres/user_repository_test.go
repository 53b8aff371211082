package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

func newUserRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "confirmed", "avatar", "refresh_token", "created_at",
	})
}

func TestUserRepository_GetByEmail_Found(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM users WHERE email = \$1$`).
		WithArgs("ann@example.com").
		WillReturnRows(userRows().AddRow(1, "ann", "ann@example.com", "hash", true, "https://g/av", nil, created))

	got, err := repo.GetByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 1 || !got.Confirmed || got.Avatar != "https://g/av" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.RefreshToken != nil {
		t.Error("null refresh token must map to nil")
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "ann",
		Email:        "ann@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("want ErrUserExists, got %v", err)
	}
}

func TestUserRepository_Create_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT INTO users \(username, email, password_hash, confirmed, avatar, created_at\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)\s+RETURNING`).
		WithArgs("ann", "ann@example.com", "hash", false, sqlmock.AnyArg(), created).
		WillReturnRows(userRows().AddRow(3, "ann", "ann@example.com", "hash", false, nil, nil, created))

	got, err := repo.Create(context.Background(), &domain.User{
		Username:     "ann",
		Email:        "ann@example.com",
		PasswordHash: "hash",
		CreatedAt:    created,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("want assigned id 3, got %d", got.ID)
	}
}

func TestUserRepository_ConfirmEmail_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE users SET confirmed = TRUE WHERE email = \$1$`).
		WithArgs("ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ConfirmEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateRefreshToken_ClearsWithNil(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE users SET refresh_token = \$1 WHERE id = \$2$`).
		WithArgs(nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), 1, nil); err != nil {
		t.Fatalf("UpdateRefreshToken error: %v", err)
	}
}

func TestUserRepository_UpdateAvatar_ReturnsUpdatedUser(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`^UPDATE users SET avatar = \$1 WHERE email = \$2 RETURNING`).
		WithArgs("https://cdn/a.png", "ann@example.com").
		WillReturnRows(userRows().AddRow(1, "ann", "ann@example.com", "hash", true, "https://cdn/a.png", nil, created))

	got, err := repo.UpdateAvatar(context.Background(), "ann@example.com", "https://cdn/a.png")
	if err != nil {
		t.Fatalf("UpdateAvatar error: %v", err)
	}
	if got.Avatar != "https://cdn/a.png" {
		t.Errorf("avatar not updated: %q", got.Avatar)
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

const contactColumns = "id, firstname, secondname, email, telephone, birthday, notes, user_id"

// ContactRepository persists contacts. Every query carries the owner in its
// WHERE clause, so ownership scoping is enforced by the store itself: a
// foreign-owned id scans zero rows and surfaces as domain.ErrContactNotFound.
type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (r *ContactRepository) GetByID(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND id = $2`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, contactID), "get contact")
}

func (r *ContactRepository) ListWithBirthday(ctx context.Context, userID int64) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND birthday IS NOT NULL
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts with birthday: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// ListAllWithBirthday returns birthday-bearing contacts across every user.
// It serves only the background reminder scanner.
func (r *ContactRepository) ListAllWithBirthday(ctx context.Context) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE birthday IS NOT NULL
		ORDER BY user_id, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all contacts with birthday: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// FindByEmail matches the email exactly and case-sensitively, unlike the
// substring name filters.
func (r *ContactRepository) FindByEmail(ctx context.Context, userID int64, email string) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND email = $2
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, email)
	if err != nil {
		return nil, fmt.Errorf("find contacts by email: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// FindByName applies a case-insensitive, unanchored substring match for each
// non-empty predicate; predicates combine conjunctively.
func (r *ContactRepository) FindByName(ctx context.Context, userID int64, filter ports.NameFilter) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Firstname != "" {
		args = append(args, filter.Firstname)
		query += fmt.Sprintf(" AND firstname ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.Secondname != "" {
		args = append(args, filter.Secondname)
		query += fmt.Sprintf(" AND secondname ILIKE '%%' || $%d || '%%'", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find contacts by name: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

func (r *ContactRepository) Create(ctx context.Context, userID int64, fields ports.ContactFields) (*domain.Contact, error) {
	query := `INSERT INTO contacts (firstname, secondname, email, telephone, birthday, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + contactColumns

	row := r.db.QueryRowContext(ctx, query,
		fields.Firstname, fields.Secondname, fields.Email, fields.Telephone,
		nullTime(fields.Birthday), userID)

	contact, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, userID, contactID int64, fields ports.ContactFields) (*domain.Contact, error) {
	query := `UPDATE contacts
		SET firstname = $1, secondname = $2, email = $3, telephone = $4, birthday = $5
		WHERE id = $6 AND user_id = $7
		RETURNING ` + contactColumns

	row := r.db.QueryRowContext(ctx, query,
		fields.Firstname, fields.Secondname, fields.Email, fields.Telephone,
		nullTime(fields.Birthday), contactID, userID)

	return r.scanOne(row, "update contact")
}

func (r *ContactRepository) UpdateNotes(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error) {
	query := `UPDATE contacts
		SET notes = $1
		WHERE id = $2 AND user_id = $3
		RETURNING ` + contactColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, notes, contactID, userID), "update contact notes")
}

func (r *ContactRepository) Delete(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	query := `DELETE FROM contacts
		WHERE id = $1 AND user_id = $2
		RETURNING ` + contactColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, contactID, userID), "delete contact")
}

func (r *ContactRepository) scanOne(row *sql.Row, op string) (*domain.Contact, error) {
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		c        domain.Contact
		birthday sql.NullTime
		notes    sql.NullString
	)
	err := row.Scan(&c.ID, &c.Firstname, &c.Secondname, &c.Email, &c.Telephone,
		&birthday, &notes, &c.UserID)
	if err != nil {
		return nil, err
	}
	if birthday.Valid {
		t := birthday.Time
		c.Birthday = &t
	}
	if notes.Valid {
		s := notes.String
		c.Notes = &s
	}
	return &c, nil
}

func scanContacts(rows *sql.Rows) ([]*domain.Contact, error) {
	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

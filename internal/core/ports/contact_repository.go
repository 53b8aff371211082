package ports

import (
	"context"
	"time"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// ContactFields carries the replaceable fields of a contact. Notes is not
// part of it: notes are set only through UpdateNotes.
type ContactFields struct {
	Firstname  string
	Secondname string
	Email      string
	Telephone  int64
	Birthday   *time.Time
}

// NameFilter carries the case-insensitive substring predicates for the name
// search operations. An empty field means "no constraint on that name".
type NameFilter struct {
	Firstname  string
	Secondname string
}

// ContactRepository defines the persistence boundary of the contact store.
// Every operation is scoped to the owning user: a contact id that exists but
// belongs to another user behaves exactly like an absent id and yields
// domain.ErrContactNotFound.
type ContactRepository interface {
	// List returns a page of the user's contacts in store order.
	List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error)
	// GetByID returns a single owned contact or domain.ErrContactNotFound.
	GetByID(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	// ListWithBirthday returns all owned contacts that have a birthday set.
	ListWithBirthday(ctx context.Context, userID int64) ([]*domain.Contact, error)
	// FindByEmail returns all owned contacts with an exact, case-sensitive
	// email match.
	FindByEmail(ctx context.Context, userID int64, email string) ([]*domain.Contact, error)
	// FindByName returns all owned contacts matching every non-empty
	// substring predicate in filter, case-insensitively.
	FindByName(ctx context.Context, userID int64, filter NameFilter) ([]*domain.Contact, error)
	// Create persists a new contact owned by userID. Notes start unset.
	Create(ctx context.Context, userID int64, fields ContactFields) (*domain.Contact, error)
	// Update replaces every field except id, owner and notes.
	Update(ctx context.Context, userID, contactID int64, fields ContactFields) (*domain.Contact, error)
	// UpdateNotes replaces only the notes field.
	UpdateNotes(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error)
	// Delete removes the contact and returns its last snapshot.
	Delete(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
}

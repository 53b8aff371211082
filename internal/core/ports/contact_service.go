package ports

import (
	"context"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// ContactService defines the query/filter use-cases exposed to the HTTP
// layer. The userID argument is always the authenticated caller; no
// operation ever reveals or mutates another user's contacts.
type ContactService interface {
	List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error)
	GetByID(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	// GetNotes returns the contact whose notes field is authoritative for
	// the notes endpoint. Scoping is identical to GetByID.
	GetNotes(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
	// BirthdayAhead returns the contacts whose birthday anniversary falls
	// within the next horizonDays days.
	BirthdayAhead(ctx context.Context, userID int64, horizonDays int) ([]*domain.Contact, error)
	ByEmail(ctx context.Context, userID int64, email string) ([]*domain.Contact, error)
	ByFirstname(ctx context.Context, userID int64, firstname string) ([]*domain.Contact, error)
	BySecondname(ctx context.Context, userID int64, secondname string) ([]*domain.Contact, error)
	ByFirstAndSecondname(ctx context.Context, userID int64, firstname, secondname string) ([]*domain.Contact, error)
	Create(ctx context.Context, userID int64, fields ContactFields) (*domain.Contact, error)
	Update(ctx context.Context, userID, contactID int64, fields ContactFields) (*domain.Contact, error)
	UpdateNotes(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error)
	Remove(ctx context.Context, userID, contactID int64) (*domain.Contact, error)
}

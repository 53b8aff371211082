package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// ContactService implements the contact query/filter use-cases on top of a
// ContactRepository. It holds no contact state between calls; every
// operation re-reads under the caller's ownership scope.
type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the reference-date source. Used by tests to pin "today".
func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

func (s *ContactService) List(ctx context.Context, userID int64, skip, limit int) ([]*domain.Contact, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return s.repo.List(ctx, userID, skip, limit)
}

func (s *ContactService) GetByID(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.repo.GetByID(ctx, userID, contactID)
}

// GetNotes returns the same contact as GetByID; the distinct use-case exists
// because the notes endpoint renders the notes field authoritatively.
func (s *ContactService) GetNotes(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	return s.repo.GetByID(ctx, userID, contactID)
}

// BirthdayAhead returns the caller's contacts whose birthday anniversary
// falls within the next horizonDays days, evaluated against the injected
// clock. Contacts without a birthday never match.
func (s *ContactService) BirthdayAhead(ctx context.Context, userID int64, horizonDays int) ([]*domain.Contact, error) {
	candidates, err := s.repo.ListWithBirthday(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	matched := make([]*domain.Contact, 0, len(candidates))
	for _, c := range candidates {
		if c.Birthday == nil {
			continue
		}
		if domain.HasBirthdayWithin(*c.Birthday, horizonDays, today) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *ContactService) ByEmail(ctx context.Context, userID int64, email string) ([]*domain.Contact, error) {
	// Exact, case-sensitive match: the email filter deliberately differs
	// from the substring-matching name filters.
	return s.repo.FindByEmail(ctx, userID, email)
}

func (s *ContactService) ByFirstname(ctx context.Context, userID int64, firstname string) ([]*domain.Contact, error) {
	return s.repo.FindByName(ctx, userID, ports.NameFilter{Firstname: firstname})
}

func (s *ContactService) BySecondname(ctx context.Context, userID int64, secondname string) ([]*domain.Contact, error) {
	return s.repo.FindByName(ctx, userID, ports.NameFilter{Secondname: secondname})
}

func (s *ContactService) ByFirstAndSecondname(ctx context.Context, userID int64, firstname, secondname string) ([]*domain.Contact, error) {
	return s.repo.FindByName(ctx, userID, ports.NameFilter{Firstname: firstname, Secondname: secondname})
}

func (s *ContactService) Create(ctx context.Context, userID int64, fields ports.ContactFields) (*domain.Contact, error) {
	contact, err := s.repo.Create(ctx, userID, fields)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create contact")
		return nil, err
	}
	s.logger.Info().Int64("contact_id", contact.ID).Int64("user_id", userID).Msg("contact created")
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, userID, contactID int64, fields ports.ContactFields) (*domain.Contact, error) {
	contact, err := s.repo.Update(ctx, userID, contactID, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("contact_id", contactID).Int64("user_id", userID).Msg("contact updated")
	return contact, nil
}

func (s *ContactService) UpdateNotes(ctx context.Context, userID, contactID int64, notes string) (*domain.Contact, error) {
	contact, err := s.repo.UpdateNotes(ctx, userID, contactID, notes)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("contact_id", contactID).Int64("user_id", userID).Msg("contact notes updated")
	return contact, nil
}

func (s *ContactService) Remove(ctx context.Context, userID, contactID int64) (*domain.Contact, error) {
	contact, err := s.repo.Delete(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("contact_id", contactID).Int64("user_id", userID).Msg("contact removed")
	return contact, nil
}

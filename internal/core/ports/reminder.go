package ports

import (
	"context"
	"time"

	"github.com/DDjog/RestAPIz14/internal/core/domain"
)

// BirthdayReminder is a single upcoming-birthday notification for one contact.
type BirthdayReminder struct {
	UserID          int64
	ContactID       int64
	Firstname       string
	Secondname      string
	Birthday        time.Time
	AnniversaryYear int
}

// ReminderNotifier delivers a reminder to its owner.
type ReminderNotifier interface {
	Notify(ctx context.Context, reminder BirthdayReminder) error
}

// ReminderDedup suppresses duplicate reminders for the same contact and
// anniversary year. MarkSent returns true exactly once per key.
type ReminderDedup interface {
	MarkSent(ctx context.Context, userID, contactID int64, year int) (bool, error)
}

// BirthdaySource lists every stored contact with a birthday, across all users.
// Only the background scanner crosses user boundaries; the API surface never
// does.
type BirthdaySource interface {
	ListAllWithBirthday(ctx context.Context) ([]*domain.Contact, error)
}

package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// LogNotifier writes reminders to the structured log. It stands in for a real
// delivery channel until one is wired up.
// TODO: replace with an email notifier once an SMTP relay is provisioned.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, r ports.BirthdayReminder) error {
	n.log.Info().
		Int64("user_id", r.UserID).
		Int64("contact_id", r.ContactID).
		Str("firstname", r.Firstname).
		Str("secondname", r.Secondname).
		Time("birthday", r.Birthday).
		Int("anniversary_year", r.AnniversaryYear).
		Msg("upcoming birthday")
	return nil
}

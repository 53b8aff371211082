package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DDjog/RestAPIz14/internal/api/metrics"
	"github.com/DDjog/RestAPIz14/internal/core/domain"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

// Scanner periodically walks every stored contact and enqueues a reminder for
// each birthday falling inside the horizon. Deduplication happens downstream
// in the dispatcher, so rescanning the same window is harmless.
type Scanner struct {
	source      ports.BirthdaySource
	dispatcher  *Dispatcher
	horizonDays int
	interval    time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

func NewScanner(source ports.BirthdaySource, dispatcher *Dispatcher, horizonDays int, interval time.Duration, log zerolog.Logger) *Scanner {
	return &Scanner{
		source:      source,
		dispatcher:  dispatcher,
		horizonDays: horizonDays,
		interval:    interval,
		log:         log,
		now:         time.Now,
	}
}

// WithClock overrides the scanner's clock. Intended for tests.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Run scans once immediately, then on every interval tick until ctx is
// cancelled.
func (s *Scanner) Run(ctx context.Context) {
	s.Scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan performs a single pass over all contacts with a birthday and enqueues
// reminders for those inside the horizon.
func (s *Scanner) Scan(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.ReminderScanDuration.Observe(time.Since(start).Seconds())
	}()

	contacts, err := s.source.ListAllWithBirthday(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("birthday scan failed")
		return
	}

	today := s.now()
	enqueued := 0
	for _, c := range contacts {
		if c.Birthday == nil {
			continue
		}
		if !domain.HasBirthdayWithin(*c.Birthday, s.horizonDays, today) {
			continue
		}
		s.dispatcher.Enqueue(ports.BirthdayReminder{
			UserID:          c.UserID,
			ContactID:       c.ID,
			Firstname:       c.Firstname,
			Secondname:      c.Secondname,
			Birthday:        *c.Birthday,
			AnniversaryYear: anniversaryYear(*c.Birthday, today),
		})
		enqueued++
	}

	s.log.Debug().
		Int("contacts", len(contacts)).
		Int("enqueued", enqueued).
		Msg("birthday scan complete")
}

// anniversaryYear returns the calendar year of the next occurrence of the
// birthday relative to today. A birthday whose month/day has already passed
// this year belongs to next year's anniversary.
func anniversaryYear(birthday, today time.Time) int {
	year := today.Year()
	if birthday.Month() < today.Month() ||
		(birthday.Month() == today.Month() && birthday.Day() <= today.Day()) {
		year++
	}
	return year
}

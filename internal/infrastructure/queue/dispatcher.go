package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/DDjog/RestAPIz14/internal/api/metrics"
	"github.com/DDjog/RestAPIz14/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes birthday reminders to a fixed set of workers using
// consistent hashing on the owning user id, guaranteeing per-user delivery
// ordering. Each worker claims the reminder through the dedup store before
// notifying, so a reminder fires at most once per contact per anniversary
// year even across overlapping scans.
type Dispatcher struct {
	workers  []chan ports.BirthdayReminder
	dedup    ports.ReminderDedup
	notifier ports.ReminderNotifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, dedup ports.ReminderDedup, notifier ports.ReminderNotifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.BirthdayReminder, numWorkers),
		dedup:    dedup,
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BirthdayReminder, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a reminder to the worker responsible for its owner.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(reminder ports.BirthdayReminder) {
	d.workers[d.shardIndex(reminder.UserID)] <- reminder
}

// EnqueueBatch enqueues multiple reminders preserving per-user ordering.
func (d *Dispatcher) EnqueueBatch(reminders []ports.BirthdayReminder) {
	for _, r := range reminders {
		d.Enqueue(r)
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BirthdayReminder) {
	for {
		select {
		case <-ctx.Done():
			return
		case reminder, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, reminder)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, reminder ports.BirthdayReminder) {
	fresh, err := d.dedup.MarkSent(ctx, reminder.UserID, reminder.ContactID, reminder.AnniversaryYear)
	if err != nil {
		d.log.Error().Err(err).
			Int64("user_id", reminder.UserID).
			Int64("contact_id", reminder.ContactID).
			Int("worker_id", workerID).
			Msg("reminder dedup check failed")
		return
	}
	if !fresh {
		metrics.RemindersDedupTotal.WithLabelValues("hit").Inc()
		return
	}
	metrics.RemindersDedupTotal.WithLabelValues("miss").Inc()

	if err := d.notifier.Notify(ctx, reminder); err != nil {
		d.log.Error().Err(err).
			Int64("user_id", reminder.UserID).
			Int64("contact_id", reminder.ContactID).
			Int("worker_id", workerID).
			Msg("reminder delivery failed")
		return
	}
	metrics.RemindersSentTotal.Inc()
}

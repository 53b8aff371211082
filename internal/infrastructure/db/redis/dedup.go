package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// reminderTTL keeps a sent-marker long enough to cover repeated scans of the
// same birthday window; the key embeds the anniversary year, so next year's
// reminder is a fresh key regardless.
const reminderTTL = 45 * 24 * time.Hour

// ReminderDedup suppresses duplicate birthday reminders.
// Key format: reminder:<user_id>:<contact_id>:<anniversary_year>
type ReminderDedup struct {
	client *redis.Client
}

func NewReminderDedup(client *redis.Client) *ReminderDedup {
	return &ReminderDedup{client: client}
}

// MarkSent records that a reminder went out for this contact's anniversary in
// the given year. It returns false when a marker already existed, so exactly
// one caller wins per contact per year.
func (d *ReminderDedup) MarkSent(ctx context.Context, userID, contactID int64, year int) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(userID, contactID, year), "1", reminderTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reminder dedup: %w", err)
	}
	return ok, nil
}

func (d *ReminderDedup) key(userID, contactID int64, year int) string {
	return fmt.Sprintf("reminder:%d:%d:%d", userID, contactID, year)
}

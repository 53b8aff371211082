// Package metrics defines and registers all custom Prometheus metrics for the
// contacts API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contacts"

// ── Contact metrics ───────────────────────────────────────────────────────────

// ContactsCreatedTotal counts newly created contacts.
var ContactsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of contacts created.",
	},
)

// ContactQueriesTotal counts query/filter operations.
// Label:
//   - filter: which predicate ran (e.g. "list", "by_email", "by_firstname",
//     "birthday_ahead")
var ContactQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of contact query operations, by filter kind.",
	},
	[]string{"filter"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "unconfirmed", "error"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersSentTotal counts birthday reminders handed to the notifier.
var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of birthday reminders dispatched.",
	},
)

// RemindersDedupTotal counts reminder deduplication decisions.
// Label:
//   - result: "hit" (already sent, skipped) or "miss" (new, dispatched)
var RemindersDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_dedup_total",
		Help:      "Total number of reminder dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ReminderScanDuration measures how long one full birthday scan takes.
var ReminderScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reminder_scan_duration_seconds",
		Help:      "Duration of a single birthday reminder scan.",
		Buckets:   prometheus.DefBuckets,
	},
)

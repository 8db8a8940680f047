// Package metrics defines and registers all custom Prometheus metrics for
// the notes API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto;
// request-level HTTP metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of successfully registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NotesCreatedTotal counts newly created notes.
// Label:
//   - tag: the note's category tag (e.g. "General", "Work")
var NotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_created_total",
		Help:      "Total number of notes created, by tag.",
	},
	[]string{"tag"},
)

// NotesDeletedTotal counts deleted notes.
var NotesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notes_deleted_total",
		Help:      "Total number of notes deleted.",
	},
)

// ListCacheTotal counts note-list cache lookups.
// Label:
//   - result: "hit" (served from Redis) or "miss" (read from MongoDB)
var ListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_cache_total",
		Help:      "Total number of note list cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

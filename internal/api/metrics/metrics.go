// Package metrics defines and registers all custom Prometheus metrics for the
// workforce scheduler. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto and exposed on /metrics next to the HTTP
// request metrics recorded by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scheduler"

// ── Assignment metrics ────────────────────────────────────────────────────────

// AssignmentsCreatedTotal counts assignments written.
// Label:
//   - flow: "single", "batch" or "move"
var AssignmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_created_total",
		Help:      "Total number of assignments created, by creation flow.",
	},
	[]string{"flow"},
)

// AssignmentsDeletedTotal counts assignments removed, including cascades.
var AssignmentsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_deleted_total",
		Help:      "Total number of assignments deleted.",
	},
)

// MovesSkippedTotal counts drag-and-drop moves onto an existing assignment.
var MovesSkippedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moves_skipped_total",
		Help:      "Total number of move commands skipped because the assignment already existed.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle events.
// Label:
//   - type: "signed_in", "signed_out" or "refreshed"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events, by type.",
	},
	[]string{"type"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of audit entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityErrorsTotal counts audit entries that could not be persisted.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)

// ActivityDroppedTotal counts audit entries dropped because their worker's
// buffer was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit entries dropped on a full dispatcher queue.",
	},
)

// ── Datastore metrics ─────────────────────────────────────────────────────────

// BreakerState reports circuit breaker state: 0 closed, 1 half-open, 2 open.
// Label:
//   - name: breaker name (e.g. "mongo")
var BreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "breaker_state",
		Help:      "Current circuit breaker state (0 closed, 1 half-open, 2 open).",
	},
	[]string{"name"},
)

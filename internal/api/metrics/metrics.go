// Package metrics defines and registers the custom Prometheus metrics of the
// todo service. HTTP request metrics come from echoprometheus; this package
// only holds domain counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ErrorResponsesTotal counts error responses rendered by the HTTP error handler.
// Labels:
//   - kind: taxonomy kind (e.g. "expired_token"), "http" for framework errors
//     or "internal" for unexpected failures
//   - status: HTTP status code
var ErrorResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "error_responses_total",
		Help:      "Total number of error responses, by kind and status code.",
	},
	[]string{"kind", "status"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsDroppedTotal counts audit events dropped because a worker queue
// was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full dispatcher queue.",
	},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodoOperationsTotal counts successful todo mutations.
// Label:
//   - op: "create", "update", "delete" or "admin_delete"
var TodoOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_operations_total",
		Help:      "Total number of successful todo mutations, by operation.",
	},
	[]string{"op"},
)

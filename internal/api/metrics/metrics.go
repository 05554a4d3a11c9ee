// Package metrics defines and registers the custom Prometheus metrics of the
// Ecomama marketplace API. It is the single source of truth for metric names,
// labels and help strings.
//
// All metrics are registered with the default registry on package init via
// promauto; /metrics exposes them together with the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecomama"

// ── Route metrics ─────────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts authorization predicate outcomes.
// Label:
//   - result: "allowed" or "denied"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of route authorization decisions, by result.",
	},
	[]string{"result"},
)

// RequestFailuresTotal counts failed route invocations.
// Label:
//   - kind: VALIDATION_ERROR, UNAUTHORIZED, FORBIDDEN, NOT_FOUND or INTERNAL_ERROR
var RequestFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_failures_total",
		Help:      "Total number of failed route invocations, by error kind.",
	},
	[]string{"kind"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// MembershipDecisionsTotal counts membership requests and decisions.
// Label:
//   - status: PENDING (request filed), APPROVED or REJECTED
var MembershipDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "membership_decisions_total",
		Help:      "Total number of membership requests and decisions, by resulting status.",
	},
	[]string{"status"},
)

// ListingsCreatedTotal counts newly created listings.
// Label:
//   - type: OFFER or DEMAND
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by type.",
	},
	[]string{"type"},
)

// ListingsExpiredTotal counts listings moved to EXPIRED by the sweeper.
var ListingsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_expired_total",
		Help:      "Total number of listings expired by the background sweeper.",
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts entries dropped because a worker channel was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity entries dropped because the queue was full.",
	},
)

// ActivityProcessingDuration measures how long persisting one entry takes.
// Label:
//   - result: "ok" or "error"
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

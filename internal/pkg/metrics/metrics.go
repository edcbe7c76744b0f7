// Package metrics defines and registers all custom Prometheus metrics for the
// directory access service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory_access"

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokensIssuedTotal counts signed tokens.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// TokenVerificationsTotal counts bearer token checks.
// Label:
//   - result: "valid", "expired", "invalid" or "missing"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Password metrics ──────────────────────────────────────────────────────────

// PasswordHashDuration measures bcrypt work on the hash pool.
// Label:
//   - op: "hash" or "compare"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt operations executed by the hash pool.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5},
	},
	[]string{"op"},
)

// HashPoolQueueDepth tracks jobs waiting for a hash worker.
var HashPoolQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_pool_queue_depth",
		Help:      "Current number of password jobs waiting for a worker.",
	},
)

// ── Access-control metrics ────────────────────────────────────────────────────

// AccessDecisionsTotal counts authorization decisions made by middleware.
// Labels:
//   - check: "role" or "module"
//   - result: "allow" or "deny"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access-control decisions, by check and result.",
	},
	[]string{"check", "result"},
)

// ConfigSwapsTotal counts attempts to replace the active project configuration.
// Labels:
//   - source: "api", "preset", "remote" or "restore"
//   - result: "applied" or "rejected"
var ConfigSwapsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_swaps_total",
		Help:      "Total number of project configuration replacements, by source and result.",
	},
	[]string{"source", "result"},
)

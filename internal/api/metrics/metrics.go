// Package metrics defines and registers all custom Prometheus metrics for
// the clinic account API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_credentials", "disabled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account creations that committed.
// Label:
//   - kind: "self" (plain registration), "patient", "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by creation path.",
	},
	[]string{"kind"},
)

// PasswordUpdatesTotal counts password writes.
// Label:
//   - kind: "change" (self, old password verified) or "reset" (administrative)
var PasswordUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_updates_total",
		Help:      "Total number of successful password changes and resets.",
	},
	[]string{"kind"},
)

// LoginDuration measures login latency end-to-end, dominated by the
// deliberately expensive credential verification.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login processing including credential verification.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

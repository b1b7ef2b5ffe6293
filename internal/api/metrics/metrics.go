// Package metrics defines and registers all custom Prometheus metrics for the
// lab access API. It is the single source of truth for metric names, labels,
// and help strings.
//
// All metrics register with the default Prometheus registry via promauto at
// package init, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "labpass"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: "student" or "faculty"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by role.",
	},
	[]string{"role"},
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

// ── Request workflow metrics ──────────────────────────────────────────────────

// RequestsSubmittedTotal counts submitted lab access requests.
// Label:
//   - kind: "personal" or "students"
var RequestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_submitted_total",
		Help:      "Total number of lab access requests submitted, by kind.",
	},
	[]string{"kind"},
)

// DecisionsTotal counts admin decisions applied to pending requests.
// Label:
//   - status: "approved" or "rejected"
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total number of admin decisions, by resulting status.",
	},
	[]string{"status"},
)

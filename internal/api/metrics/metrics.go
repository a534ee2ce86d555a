// Package metrics defines and registers all custom Prometheus metrics for the
// hospital API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// LoginsTotal counts login attempts.
// Labels:
//   - role: the claimed role on the login form ("Patient", "Admin", ...)
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by claimed role and outcome.",
	},
	[]string{"role", "outcome"},
)

// TokenRejectionsTotal counts requests rejected by the role guard.
// Label:
//   - reason: "missing", "invalid", "expired", "revoked", "role_mismatch"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the authentication guard.",
	},
	[]string{"reason"},
)

// RegistrationsTotal counts created identities by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of identities created, by role.",
	},
	[]string{"role"},
)

// AppointmentsBookedTotal counts booked appointments by department.
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked, by department.",
	},
	[]string{"department"},
)

// MessagesReceivedTotal counts contact-form submissions.
var MessagesReceivedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_received_total",
		Help:      "Total number of contact messages received.",
	},
)

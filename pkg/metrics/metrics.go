package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts by role and result.",
		},
		[]string{"role", "result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by result.",
		},
		[]string{"result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of token pairs issued, by flow.",
		},
		[]string{"flow"},
	)

	RefreshReuseTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_refresh_reuse_total",
			Help: "Refresh tokens presented after they were rotated or revoked.",
		},
	)

	VerificationDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_decisions_total",
			Help: "Verification requests decided, by action.",
		},
		[]string{"action"},
	)

	PendingVerificationRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "verification_requests_pending",
			Help: "Verification requests currently waiting for a decision.",
		},
	)
)

var registerOnce sync.Once

// MustRegister registers every collector with reg. Later calls are no-ops.
func MustRegister(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			AuthRegistrationsTotal,
			AuthLoginsTotal,
			TokensIssuedTotal,
			RefreshReuseTotal,
			VerificationDecisionsTotal,
			PendingVerificationRequests,
		)
	})
}

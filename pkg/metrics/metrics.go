package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blueexport", Name: "submissions_total", Help: "Form submissions by collection and outcome."},
		[]string{"collection", "outcome"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "blueexport", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)
	DiagnosticsRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blueexport", Name: "diagnostics_runs_total", Help: "Diagnostic runs by connection status."},
		[]string{"connection"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Submissions)
	reg.MustRegister(RequestDuration)
	reg.MustRegister(DiagnosticsRuns)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK         = "ok"
	OutcomeBadRequest = "bad_request"
	OutcomeConflict   = "conflict"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BonusOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bonus_operations_total",
			Help: "Bonus lifecycle operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func ObserveBonusOperation(operation, outcome string) {
	BonusOperations.WithLabelValues(operation, outcome).Inc()
}

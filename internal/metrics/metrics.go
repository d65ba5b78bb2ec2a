package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batepapo_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ParticipantsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_participants_registered_total",
			Help: "Total participants registered",
		},
	)

	MessagesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_messages_posted_total",
			Help: "Total messages posted",
		},
		[]string{"type"}, // "message" or "private_message"
	)

	// Sweeper metrics
	ParticipantsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_participants_evicted_total",
			Help: "Total participants evicted for inactivity",
		},
	)

	SweepRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "batepapo_sweep_runs_total",
			Help: "Total eviction sweep runs",
		},
	)

	SweepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batepapo_sweep_failures_total",
			Help: "Total per-participant failures during sweeps",
		},
		[]string{"op"}, // "list", "delete" or "announce"
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "batepapo_sweep_duration_seconds",
			Help:    "Eviction sweep duration",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// Package metrics exposes the Prometheus instruments for the economy
// core and the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "railyard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// Economy metrics
var (
	JobsAssigned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_jobs_assigned_total",
			Help: "Jobs moved to in_progress, by job type.",
		},
		[]string{"job_type"},
	)

	JobsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_jobs_claimed_total",
			Help: "Jobs settled and removed from the board, by job type.",
		},
		[]string{"job_type"},
	)

	LocomotivesPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_locomotives_purchased_total",
			Help: "Locomotive purchases by source (new, used).",
		},
		[]string{"source"},
	)

	MarketRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_market_refreshes_total",
			Help: "Market regenerations by trigger (scheduled, manual, init).",
		},
		[]string{"trigger"},
	)

	AchievementsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railyard_achievements_claimed_total",
			Help: "Achievement claims by set type.",
		},
		[]string{"type"},
	)

	CommitConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "railyard_commit_conflicts_total",
			Help: "Optimistic-concurrency conflicts surfaced to callers.",
		},
	)
)

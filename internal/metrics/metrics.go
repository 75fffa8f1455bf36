// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts cache reads by cache name and result (hit, miss, stale).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_cache_lookups_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"cache", "result"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "boxoffice_cache_entries",
			Help: "Current number of entries per cache",
		},
		[]string{"cache"},
	)

	// UpstreamRequests counts provider calls by outcome (success, not_found, error, rejected).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_upstream_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boxoffice_upstream_request_duration_seconds",
			Help:    "Duration of upstream provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)

	EnrichFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boxoffice_enrich_failures_total",
			Help: "Total number of per-movie revenue lookups that failed and defaulted to zero",
		},
	)

	// DailyRefreshRuns counts executions of the daily refresh body by trigger and outcome.
	DailyRefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_daily_refresh_runs_total",
			Help: "Total number of daily refresh executions",
		},
		[]string{"trigger", "outcome"},
	)

	RatingPrewarm = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_rating_prewarm_total",
			Help: "Total number of rating pre-warm lookups by outcome",
		},
		[]string{"outcome"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "boxoffice_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boxoffice_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)
)

// ObserveUpstream records the outcome and latency of one provider call.
func ObserveUpstream(provider, endpoint, outcome string, start time.Time) {
	UpstreamRequests.WithLabelValues(provider, endpoint, outcome).Inc()
	UpstreamDuration.WithLabelValues(provider, endpoint).Observe(time.Since(start).Seconds())
}

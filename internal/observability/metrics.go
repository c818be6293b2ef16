// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanxing_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sanxing_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TokenValidations counts bearer token validations by outcome
	// (valid, expired, unknown, malformed).
	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanxing_token_validations_total",
		Help: "Total number of bearer token validations by outcome",
	}, []string{"outcome"})

	// TokensIssued counts opaque tokens issued at login.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sanxing_tokens_issued_total",
		Help: "Total number of opaque bearer tokens issued",
	})

	// CacheLookups counts cache reads by outcome (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanxing_cache_lookups_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"outcome"})

	// DailySelections counts daily-question selections by cache source.
	DailySelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanxing_daily_selections_total",
		Help: "Total number of daily question selections by source (cache, db)",
	}, []string{"source"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// Package metrics provides Prometheus metrics for the contacts server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Auth outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// IdentityCacheRequests counts identity cache lookups by result.
	IdentityCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "identity_cache_requests_total",
			Help:      "Total number of identity cache lookups",
		},
		[]string{"result"},
	)

	// IdentityCacheWriteErrors counts failed fill and invalidate calls.
	IdentityCacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "identity_cache_write_errors_total",
			Help:      "Total number of failed identity cache writes",
		},
		[]string{"operation"},
	)

	// AuthOperations counts auth service operations by outcome.
	AuthOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts",
			Name:      "auth_operations_total",
			Help:      "Total number of auth operations",
		},
		[]string{"operation", "outcome"},
	)

	// RequestDuration observes handled requests per transport.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contacts",
			Name:      "request_duration_seconds",
			Help:      "Duration of handled requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"transport", "method", "code"},
	)
)

// RecordCacheLookup records the result of an identity cache lookup.
func RecordCacheLookup(result string) {
	IdentityCacheRequests.WithLabelValues(result).Inc()
}

// RecordCacheWriteError records a failed cache write.
func RecordCacheWriteError(operation string) {
	IdentityCacheWriteErrors.WithLabelValues(operation).Inc()
}

// RecordAuth records the outcome of an auth operation.
func RecordAuth(operation, outcome string) {
	AuthOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordRequest observes one handled request.
func RecordRequest(transport, method, code string, d time.Duration) {
	RequestDuration.WithLabelValues(transport, method, code).Observe(d.Seconds())
}

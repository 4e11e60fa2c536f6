// Package metrics exposes the service's prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CacheHits counts entity reads served from the per-environment cache.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mimer",
		Subsystem: "admin",
		Name:      "cache_hits_total",
		Help:      "Entity reads served from the per-environment cache",
	}, []string{"entity", "environment"})

	// CacheMisses counts entity reads that fell through to the store.
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mimer",
		Subsystem: "admin",
		Name:      "cache_misses_total",
		Help:      "Entity reads that fell through to the document store",
	}, []string{"entity", "environment"})

	// StoreQueryFailures counts store pages that failed and were degraded to
	// partial or empty results.
	StoreQueryFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mimer",
		Subsystem: "admin",
		Name:      "store_query_failures_total",
		Help:      "Document store query pages that failed",
	}, []string{"database", "container"})

	// RequestDuration tracks HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mimer",
		Subsystem: "admin",
		Name:      "http_request_duration_seconds",
		Help:      "Latency distribution of HTTP handlers",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(CacheHits, CacheMisses, StoreQueryFailures, RequestDuration)
}

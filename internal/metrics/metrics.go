// Package metrics holds the Prometheus collectors shared by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "designpanda"

var (
	// BackendCalls counts /execute calls by outcome
	BackendCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_calls_total",
		Help:      "AI backend calls by outcome.",
	}, []string{"outcome"})

	// BackendLatency observes /execute round trips
	BackendLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_call_duration_seconds",
		Help:      "AI backend call latency.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	// Recommendations counts pipeline runs by origin
	Recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Recommendations produced by origin and partial flag.",
	}, []string{"origin", "partial"})

	// RecommendationFailures counts runs that ended without a recommendation
	RecommendationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_failures_total",
		Help:      "Pipeline runs that failed on the fallback path.",
	})

	// SearchRequests counts search calls by provider and result
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Search requests by provider and status.",
	}, []string{"provider", "status"})

	// SearchCacheHits counts cached search responses
	SearchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_cache_hits_total",
		Help:      "Search requests answered from the cache.",
	})

	// CircuitState reports the backend breaker state (0 closed, 1 open, 2 half-open)
	CircuitState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backend_circuit_state",
		Help:      "Backend circuit breaker state.",
	})

	// HTTPRequests counts inbound requests
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Inbound HTTP requests.",
	}, []string{"method", "route", "status"})
)

// ObserveBackendCall records one backend call
func ObserveBackendCall(outcome string, d time.Duration) {
	BackendCalls.WithLabelValues(outcome).Inc()
	BackendLatency.Observe(d.Seconds())
}

// ObserveRecommendation records a finished pipeline run
func ObserveRecommendation(origin string, partial bool) {
	p := "false"
	if partial {
		p = "true"
	}
	Recommendations.WithLabelValues(origin, p).Inc()
}

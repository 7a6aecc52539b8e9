package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sw360search"

// Search path metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Total number of realm backend queries",
		},
		[]string{"realm", "mode", "status"}, // mode: wildcard / exact
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Realm backend query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"realm", "mode"},
	)

	SearchCalls = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_backend_calls",
			Help:      "Backend queries issued per search request",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Merged results returned per search request",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 200, 500, 1000},
		},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search path metrics on the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(BackendRequestsTotal)
		prometheus.MustRegister(BackendRequestDuration)
		prometheus.MustRegister(SearchCalls)
		prometheus.MustRegister(SearchResults)
	})
}

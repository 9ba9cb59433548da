package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "omnisearch"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by outcome",
		},
		[]string{"outcome"}, // ok / partial / empty / unavailable / invalid / canceled
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Merged result count per search before pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 150},
		},
	)

	RetrievalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrievals_total",
			Help:      "Per-type candidate retrievals by outcome",
		},
		[]string{"type", "outcome"}, // ok / error / timeout / open
	)

	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_duration_seconds",
			Help:      "Per-type candidate retrieval duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type"},
	)

	RetrievedCandidates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieved_candidates_total",
			Help:      "Candidates returned by retrievers",
		},
		[]string{"type"},
	)

	SocialLookupFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "social_lookup_failures_total",
			Help:      "Social graph lookups that fell back to restrictive defaults",
		},
		[]string{"lookup"}, // follow_status / mutual_count
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "retriever_breaker_state",
			Help:      "Retriever circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"type"},
	)
)

var registerOnce sync.Once

// Register registers the HTTP and search pipeline metrics on the default
// registry. Safe to call more than once; called from main (no init()).
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			SearchesTotal,
			SearchDuration,
			SearchResults,
			RetrievalsTotal,
			RetrievalDuration,
			RetrievedCandidates,
			SocialLookupFailures,
			BreakerState,
		)
	})
}

// Package metrics declares the process prometheus collectors
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "glossrank"

var (
	// HTTPRequests counts served requests by method, route pattern and status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration tracks request latency by method and route pattern
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ScorerOutcomes counts remote scorer calls by operation and outcome kind
	ScorerOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorer_outcomes_total",
			Help:      "Remote scorer calls by operation and outcome (success, rejected, transport_error)",
		},
		[]string{"op", "outcome"},
	)

	// ScorerDuration tracks remote scorer latency by operation
	ScorerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorer_request_duration_seconds",
			Help:      "Remote scorer call latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scorer_breaker_state",
			Help:      "Scorer circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// BreakerTransitions counts breaker state changes
	BreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorer_breaker_transitions_total",
			Help:      "Scorer circuit breaker transitions",
		},
		[]string{"name", "from", "to"},
	)

	// RankingServed counts ranked responses by operation and source (ml_service, local, fallback)
	RankingServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_served_total",
			Help:      "Ranked lists served by operation and source",
		},
		[]string{"op", "source"},
	)

	// DBQueryDuration tracks postgres reads by call kind (query, row) and outcome (ok, no_rows, error)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Postgres read latency by call kind and outcome",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind", "outcome"},
	)

	// CacheLookups counts suggestion and trending cache lookups by cache and result (hit, miss, error)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

// Handler exposes the default registry
func Handler() http.Handler { return promhttp.Handler() }

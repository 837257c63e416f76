// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelEndpoint = "endpoint"
	LabelOutcome  = "outcome"
	LabelKind     = "kind"
	LabelName     = "name"
)

// Upstream call outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Recommendation kinds
const (
	KindPersonalized = "personalized"
	KindDefault      = "default"
	KindCached       = "cached"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Recipe lookup service
var (
	MealDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_requests_total",
			Help: "Total number of recipe lookup requests by endpoint and outcome",
		},
		[]string{LabelEndpoint, LabelOutcome},
	)

	MealDBCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealdb_cache_hits_total",
			Help: "Recipe lookups served from cache",
		},
		[]string{LabelEndpoint},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mealdb_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{LabelName},
	)
)

// Recommendations
var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation lists served by kind",
		},
		[]string{LabelKind},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Size of the scored candidate pool per personalized computation",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 200, 400},
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent computing recommendations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Remote query, gas provisioning and execution collectors.

var (
	// Query boundary
	RemoteQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "query",
		Name:      "requests_total",
		Help:      "Total remote GraphQL requests by operation and outcome",
	}, []string{"operation", "status"})

	RemoteQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "suiutils",
		Subsystem: "query",
		Name:      "request_duration_seconds",
		Help:      "Remote GraphQL request duration",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	RemotePagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "query",
		Name:      "pages_fetched_total",
		Help:      "Total pages fetched by paged listings",
	}, []string{"operation"})

	RateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "query",
		Name:      "rate_limit_waits_total",
		Help:      "Total times remote requests waited for the rate limiter",
	}, []string{"endpoint"})

	BreakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "query",
		Name:      "breaker_transitions_total",
		Help:      "Circuit breaker state transitions by endpoint and target state",
	}, []string{"endpoint", "state"})

	// Gas provisioning
	GasSelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "gas",
		Name:      "selections_total",
		Help:      "Gas provisioning attempts by outcome",
	}, []string{"outcome"})

	GasPagesScanned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "suiutils",
		Subsystem: "gas",
		Name:      "pages_scanned",
		Help:      "Coin pages scanned before a gas coin was selected or the scan ended",
		Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
	})

	// Execution
	ExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suiutils",
		Subsystem: "execute",
		Name:      "transactions_total",
		Help:      "Executed transactions by terminal state",
	}, []string{"state"})

	ExecutionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "suiutils",
		Subsystem: "execute",
		Name:      "duration_seconds",
		Help:      "Time from finalize to terminal state",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"state"})

	FinalityPollAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "suiutils",
		Subsystem: "execute",
		Name:      "finality_poll_attempts",
		Help:      "Poll attempts needed before a finality record was observed",
		Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ada_provider_attempts_total",
			Help: "Delegated reasoning attempts by provider, model and outcome",
		},
		[]string{"provider", "model", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ada_cache_lookups_total",
			Help: "Reasoner cache lookups by result",
		},
		[]string{"result"},
	)

	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ada_resolutions_total",
			Help: "Resolved queries by tier and method",
		},
		[]string{"tier", "method"},
	)

	ProofLabels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ada_proof_labels_total",
			Help: "Committed results by proof label",
		},
		[]string{"label"},
	)

	ResolutionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ada_resolution_latency_seconds",
			Help:    "End-to-end resolution latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)

	ReasonerFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ada_reasoner_exhausted_total",
			Help: "Calls where every provider failed",
		},
	)
)

// Outcome labels for ProviderAttempts.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomePermanent = "permanent"
)

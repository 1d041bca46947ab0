// internal/matching/metrics.go

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enrichment skip reasons
const (
	skipProfileFetch = "profile_fetch_failed"
	skipProfileMiss  = "profile_missing"
	skipPatternWrite = "pattern_write_failed"
)

var (
	interactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_interactions_recorded_total",
			Help: "Interactions durably recorded, by action",
		},
		[]string{"action"},
	)

	interactionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_interactions_rejected_total",
			Help: "Interactions that were not recorded, by reason",
		},
		[]string{"reason"},
	)

	successPatternsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_success_patterns_created_total",
			Help: "Success patterns created, by success type",
		},
		[]string{"success_type"},
	)

	enrichmentSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_enrichment_skipped_total",
			Help: "Success pattern enrichment skipped, by reason",
		},
		[]string{"reason"},
	)

	deriveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_preference_derive_seconds",
			Help:    "Time spent deriving a preference profile",
			Buckets: prometheus.DefBuckets,
		},
	)

	profileInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_profile_invalidations_total",
			Help: "Cached profiles dropped on request",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

// internal/profile/metrics.go

package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiekky_profile_cache_lookups_total",
			Help: "Profile cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	cacheWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kiekky_profile_cache_write_errors_total",
			Help: "Failed profile cache writes",
		},
	)
)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the profile module.
type Metrics struct {
	ProfilesBuilt    prometheus.Counter
	RankingQueries   prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	BuildAllDuration prometheus.Histogram
}

// New creates a new Metrics instance with all profile module metrics registered.
func New() *Metrics {
	return &Metrics{
		ProfilesBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orlof_profiles_built_total",
			Help: "Total number of combined profiles built",
		}),
		RankingQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orlof_profile_ranking_queries_total",
			Help: "Total number of ranking queries served",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orlof_profile_cache_hits_total",
			Help: "Profile list cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orlof_profile_cache_misses_total",
			Help: "Profile list cache misses",
		}),
		BuildAllDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orlof_profile_build_all_duration_seconds",
			Help:    "Duration of full profile aggregation passes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveBuildAll records the duration of one aggregation pass.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveBuildAll(start time.Time) {
	m.BuildAllDuration.Observe(time.Since(start).Seconds())
}

package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ratingRefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unibordima_rating_refresh_failures_total",
		Help: "Number of rating recalculations that failed and were skipped",
	})

	listingViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unibordima_listing_views_total",
		Help: "Number of listing detail views counted",
	})

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unibordima_cache_lookups_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

func recordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(cache, result).Inc()
}

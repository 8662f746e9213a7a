package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TripsGenerated   prometheus.Counter
	TripsDeleted     prometheus.Counter
	SearchCacheHits  prometheus.Counter
	SearchCacheMiss  prometheus.Counter
	SearchDuration   prometheus.Histogram
	SeatReservations *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TripsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_generated_total",
			Help:      "The total number of trips expanded from trip plans",
		}),
		TripsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_deleted_total",
			Help:      "The total number of pending trips deleted during plan edits and stabilization",
		}),
		SearchCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_hits_total",
			Help:      "The total number of trip searches answered from cache",
		}),
		SearchCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_misses_total",
			Help:      "The total number of trip searches computed from the database",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time taken to rank and filter a trip search",
			Buckets:   prometheus.DefBuckets,
		}),
		SeatReservations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_reservations_total",
			Help:      "The total number of seat reservation attempts",
		}, []string{"result"}),
	}
}

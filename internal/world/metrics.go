package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pathQueryTotal counts path queries by result: found, unreachable or blocked
	pathQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "motionmatch",
		Name:      "path_query_total",
		Help:      "Total grid path queries by result",
	}, []string{"result"})

	pathQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "motionmatch",
		Name:      "path_query_duration_seconds",
		Help:      "Grid path query duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14),
	})

	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "motionmatch",
		Name:      "path_length_cells",
		Help:      "Number of cells per found path",
		Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
	})
)

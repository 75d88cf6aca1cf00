package motion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts searches by result: match or rejected
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "motionmatch",
		Name:      "searches_total",
		Help:      "Total motion searches by result",
	}, []string{"result"})

	// switchTotal counts searches that changed the playing selection
	switchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "motionmatch",
		Name:      "switches_total",
		Help:      "Total selection switches",
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "motionmatch",
		Name:      "search_duration_seconds",
		Help:      "Motion search duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
	})

	searchKeys = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "motionmatch",
		Name:      "search_keys_scored",
		Help:      "Number of keys scored per search",
		Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
	})
)

const (
	resultMatch    = "match"
	resultRejected = "rejected"
)

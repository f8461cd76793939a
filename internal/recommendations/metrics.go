// internal/recommendations/metrics.go
package recommendations

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"mode"},
	)

	resultCounts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_result_count",
			Help:    "Number of results returned per request",
			Buckets: prometheus.LinearBuckets(0, 3, 7),
		},
	)

	generationTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommendations_generation_seconds",
			Help: "Time spent generating recommendations",
		},
		[]string{"mode"},
	)
)

func observeRequest(mode string, resultCount int, duration time.Duration) {
	requestsTotal.WithLabelValues(mode).Inc()
	resultCounts.Observe(float64(resultCount))
	generationTime.WithLabelValues(mode).Observe(duration.Seconds())
}

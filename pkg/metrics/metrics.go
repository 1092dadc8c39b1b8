package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ExtractionsTotal    *prometheus.CounterVec
	ExtractionDuration  prometheus.Histogram
	PublishesTotal      *prometheus.CounterVec
	PublishDuration     prometheus.Histogram
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of post extraction attempts.",
		},
		[]string{"status"}, // status: success, failure
	)

	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Duration of post extraction runs.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
	)

	PublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publishes_total",
			Help: "Total number of publish attempts against the destination.",
		},
		[]string{"status"},
	)

	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "publish_duration_seconds",
			Help:    "Duration of publish calls, including image transfer.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
	)
}

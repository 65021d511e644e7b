package locatorlib

import "github.com/prometheus/client_golang/prometheus"

var (
	metricLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "iplocator",
			Name:      "lookups_total",
			Help:      "Number of address lookups by family and result.",
		},
		[]string{"family", "result"},
	)
	metricTableRanges = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "iplocator",
			Name:      "table_ranges",
			Help:      "Number of ranges in the loaded table.",
		},
		[]string{"family"},
	)
	metricRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iplocator",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

func init() {
	prometheus.MustRegister(metricLookups, metricTableRanges, metricRequestDuration)
}

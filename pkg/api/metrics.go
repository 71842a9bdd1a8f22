package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

const httpAPIMetricsNamespace = "calc_http_api"

var (
	metricApiTotalRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "total_hits",
			Help:      "Calculator host HTTP API requests count",
		},
	)

	metricApiHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "path_hits",
			Help:      "Calculator host HTTP API path hits",
		},
		[]string{"status", "path"},
	)

	metricApiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: httpAPIMetricsNamespace,
			Name:      "path_duration",
			Help:      "Calculator host HTTP API request duration",
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(
		metricApiTotalRequests,
		metricApiHits,
		metricApiRequestDuration,
	)
}

// Package metrics defines the Prometheus instruments for the chat engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mitra_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mitra_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ChatResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mitra_chat_responses_total",
			Help: "Chat responses produced, by answer source.",
		},
		[]string{"source"},
	)

	ResolverMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mitra_resolver_matches_total",
			Help: "Knowledge-base matches, by resolver tier.",
		},
		[]string{"match_type"},
	)

	QARecordsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mitra_qa_records_total",
			Help: "Number of trained QA records in the store.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ChatResponsesTotal,
		ResolverMatchesTotal,
		QARecordsTotal,
	)
}

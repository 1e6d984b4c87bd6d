package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

var (
	// HTTPRequestsTotal counts served requests by route, method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		[]string{"route", "method"},
	)

	// AnalysisTotal counts job description analyses by outcome.
	AnalysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_analysis_total",
			Help: "Total number of job description analyses",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration tracks completion round-trip time in seconds.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobtracker_analysis_duration_seconds",
			Help:    "Duration of completion calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
	)

	// JobsStored tracks the number of jobs in the store.
	JobsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobtracker_jobs_stored",
			Help: "Number of tracked jobs currently stored",
		},
	)

	// EventPublishFailures counts job events the broker did not accept.
	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobtracker_event_publish_failures_total",
			Help: "Total number of job events that failed to publish",
		},
	)
)

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhooksReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhooks_received_total",
			Help: "Total number of webhooks received (count)",
		},
		[]string{"status"},
	)

	WebhookAckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webhook_ack_duration_ms",
			Help:    "Time spent in the synchronous webhook path before acknowledging in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		},
	)

	PipelineTasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_tasks_total",
			Help: "Total number of background pipeline tasks by outcome (count)",
		},
		[]string{"status"},
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_ms",
			Help:    "End-to-end background pipeline duration in milliseconds",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
		[]string{"status"},
	)

	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_requests_total",
			Help: "Total number of structured extraction requests to the model provider (count)",
		},
		[]string{"status"},
	)

	ExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_ms",
			Help:    "Duration of model provider extraction calls in milliseconds",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		},
	)

	DeliveryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_requests_total",
			Help: "Total number of delivery sink requests (count)",
		},
		[]string{"status"},
	)

	DeliveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_duration_ms",
			Help:    "Duration of delivery sink requests in milliseconds",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Number of pipeline tasks waiting in the worker queue (count)",
		},
	)

	WorkerTasksRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_tasks_rejected_total",
			Help: "Total number of pipeline tasks rejected because the queue was full (count)",
		},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)
)

func RegisterWebhookMetrics() {
	prometheus.MustRegister(WebhooksReceivedTotal)
	prometheus.MustRegister(WebhookAckDuration)
	prometheus.MustRegister(PipelineTasksTotal)
	prometheus.MustRegister(PipelineDuration)
	prometheus.MustRegister(ExtractionRequestsTotal)
	prometheus.MustRegister(ExtractionDuration)
	prometheus.MustRegister(DeliveryRequestsTotal)
	prometheus.MustRegister(DeliveryDuration)
}

func RegisterWorkerMetrics() {
	prometheus.MustRegister(WorkerQueueDepth)
	prometheus.MustRegister(WorkerTasksRejectedTotal)
}

func RegisterRateLimitMetrics() {
	prometheus.MustRegister(RateLimitRequestsTotal)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func ObservePipelineDuration(duration time.Duration, status string) {
	PipelineDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func ObserveExtractionDuration(duration time.Duration) {
	ExtractionDuration.Observe(float64(duration.Milliseconds()))
}

func ObserveDeliveryDuration(duration time.Duration) {
	DeliveryDuration.Observe(float64(duration.Milliseconds()))
}

// Package metrics provides Prometheus metrics for the cleaning pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the pipeline service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion outcomes
	recordsAccepted   prometheus.Counter
	recordsDuplicate  prometheus.Counter
	recordsInvalid    prometheus.Counter
	fieldErrors       *prometheus.CounterVec
	completenessScore prometheus.Histogram

	// Cleaning performance
	cleanLatency prometheus.Histogram

	// Store
	storeErrors   prometheus.Counter
	storedRecords prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "edulens",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_accepted_total",
		Help:      "Records cleaned and durably inserted",
	})
	m.recordsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_duplicate_total",
		Help:      "Records dropped as exact, hash, or near duplicates",
	})
	m.recordsInvalid = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_invalid_total",
		Help:      "Records excluded for missing hard-required fields",
	})
	m.fieldErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "field_errors_total",
		Help:      "Parse/validation failures that nulled a field",
	}, []string{"field"})
	m.completenessScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completeness_score",
		Help:      "Completeness score distribution of cleaned records",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	m.cleanLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clean_latency_milliseconds",
		Help:      "Per-record field-level cleaning latency",
		Buckets:   m.histogramBuckets,
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Persistent store failures",
	})
	m.storedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stored_records",
		Help:      "Records currently in the store",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Tasks waiting in the cleaning queue",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Cleaning queue capacity",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueues_total",
		Help:      "Tasks enqueued",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeues_total",
		Help:      "Tasks dequeued",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Enqueue attempts refused (full, closed, cancelled)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Cleaning workers in the pool",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method, and status",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// RecordAccepted increments the accepted records counter.
func RecordAccepted() {
	globalManager.recordsAccepted.Inc()
}

// RecordDuplicate increments the duplicate records counter.
func RecordDuplicate() {
	globalManager.recordsDuplicate.Inc()
}

// RecordRecordInvalid increments the invalid records counter.
func RecordRecordInvalid() {
	globalManager.recordsInvalid.Inc()
}

// RecordFieldError counts a parse/validation failure for one field.
func RecordFieldError(field string) {
	globalManager.fieldErrors.WithLabelValues(field).Inc()
}

// ObserveCompleteness records one record's completeness score.
func ObserveCompleteness(score float64) {
	globalManager.completenessScore.Observe(score)
}

// RecordCleanLatency records per-record cleaning latency in milliseconds.
func RecordCleanLatency(latencyMs float64) {
	globalManager.cleanLatency.Observe(latencyMs)
}

// RecordStoreError increments the store error counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdateStoredRecords sets the stored records gauge.
func UpdateStoredRecords(count int) {
	globalManager.storedRecords.Set(float64(count))
}

// UpdateQueueSize sets the current queue size gauge.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueEnqueueError increments the refused-enqueue counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the worker count gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

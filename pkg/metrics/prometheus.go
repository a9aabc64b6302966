// Package metrics provides Prometheus metrics for the edgefinder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var defaultLatencyBuckets = []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	analysesComputed  prometheus.Counter
	analysisLatency   prometheus.Histogram
	exportsComputed   prometheus.Counter
	exportRows        prometheus.Gauge
	exportLatency     prometheus.Histogram
	scheduledExports  *prometheus.CounterVec
	unresolvedRatings *prometheus.CounterVec

	datasetLoadLatency *prometheus.HistogramVec
	datasetLoadErrors  *prometheus.CounterVec
	datasetRows        *prometheus.GaugeVec

	ratingCacheHits   prometheus.Counter
	ratingCacheMisses prometheus.Counter
	ratingCacheErrors prometheus.Counter

	workerActiveCount prometheus.Gauge
	workerTaskLatency prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry served on /healthz

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // package-level helpers record here

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "edgefinder",
		subsystem:        "projection",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.analysesComputed = m.counter("analyses_total", "Matchup analyses computed")
	m.analysisLatency = m.histogram("analysis_latency_milliseconds", "Time to assemble one matchup analysis")
	m.exportsComputed = m.counter("exports_total", "Bulk exports computed")
	m.exportRows = m.gauge("export_rows", "Rows produced by the most recent export")
	m.exportLatency = m.histogram("export_latency_milliseconds", "Time to compute a bulk export")
	m.scheduledExports = m.counterVec("scheduled_exports_total", "Scheduled export runs by outcome", "outcome")
	m.unresolvedRatings = m.counterVec("unresolved_ratings_total", "Teams whose rating could not be matched", "side")

	m.datasetLoadLatency = m.histogramVec("dataset_load_latency_milliseconds", "Time to read and parse a dataset", "dataset")
	m.datasetLoadErrors = m.counterVec("dataset_load_errors_total", "Dataset read or parse failures", "dataset")
	m.datasetRows = m.gaugeVec("dataset_rows", "Rows in the most recently loaded dataset", "dataset")

	m.ratingCacheHits = m.counter("rating_cache_hits_total", "Rating tables served from cache")
	m.ratingCacheMisses = m.counter("rating_cache_misses_total", "Rating tables rebuilt from rows")
	m.ratingCacheErrors = m.counter("rating_cache_errors_total", "Rating cache read or write failures")

	m.workerActiveCount = m.gauge("worker_active_count", "Export workers currently computing a matchup")
	m.workerTaskLatency = m.histogram("worker_task_latency_milliseconds", "Time spent by a worker on one matchup")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration", "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "Most recent GC pause")
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

// RecordAnalysis counts one analysis and its latency.
func RecordAnalysis(latencyMs float64) {
	globalManager.analysesComputed.Inc()
	globalManager.analysisLatency.Observe(latencyMs)
}

// RecordExport counts one export, its size and latency.
func RecordExport(rows int, latencyMs float64) {
	globalManager.exportsComputed.Inc()
	globalManager.exportRows.Set(float64(rows))
	globalManager.exportLatency.Observe(latencyMs)
}

// RecordScheduledExport counts a cron-triggered export by outcome ("ok" or "error").
func RecordScheduledExport(outcome string) {
	globalManager.scheduledExports.WithLabelValues(outcome).Inc()
}

// RecordUnresolvedRating counts a team whose rating lookup failed.
func RecordUnresolvedRating(side string) {
	globalManager.unresolvedRatings.WithLabelValues(side).Inc()
}

// RecordDatasetLoad records the latency and size of a successful dataset load.
func RecordDatasetLoad(dataset string, rows int, latencyMs float64) {
	globalManager.datasetLoadLatency.WithLabelValues(dataset).Observe(latencyMs)
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordDatasetLoadError counts a failed dataset load.
func RecordDatasetLoadError(dataset string) {
	globalManager.datasetLoadErrors.WithLabelValues(dataset).Inc()
}

// RecordRatingCacheHit counts a cache hit.
func RecordRatingCacheHit() { globalManager.ratingCacheHits.Inc() }

// RecordRatingCacheMiss counts a cache miss.
func RecordRatingCacheMiss() { globalManager.ratingCacheMisses.Inc() }

// RecordRatingCacheError counts a cache failure.
func RecordRatingCacheError() { globalManager.ratingCacheErrors.Inc() }

// WorkerStarted marks a worker busy.
func WorkerStarted() { globalManager.workerActiveCount.Inc() }

// WorkerFinished marks a worker idle and records how long the task took.
func WorkerFinished(latencyMs float64) {
	globalManager.workerActiveCount.Dec()
	globalManager.workerTaskLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

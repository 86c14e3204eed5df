// Package metrics provides Prometheus metrics for the tourplot chart service.
package metrics

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// defaultLatencyBuckets cover a local render through a slow upstream fetch, in ms.
var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Manager manages all Prometheus metrics for the chart service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - Upstream fetches and the cached snapshot
	datasetFetches       *prometheus.CounterVec
	datasetFetchDuration prometheus.Histogram
	datasetRecords       prometheus.Gauge
	datasetLastFetchUnix prometheus.Gauge
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter

	// Render Metrics - Scene building and materialization
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.GaugeVec
	marksRendered  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
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
		namespace:        "tourplot",
		subsystem:        "chart",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix != "" {
		return m.metricPrefix + "_" + n
	}
	return n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.datasetFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_fetches_total"),
		Help:        "Total number of dataset fetches by source and outcome",
		ConstLabels: labels,
	}, []string{"source", "outcome"})

	m.datasetFetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_fetch_duration_milliseconds"),
		Help:        "Histogram of dataset fetch latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_records"),
		Help:        "Number of records in the current dataset snapshot",
		ConstLabels: labels,
	})

	m.datasetLastFetchUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("dataset_last_fetch_unix"),
		Help:        "Unix time of the last successful dataset fetch",
		ConstLabels: labels,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("snapshot_cache_hits_total"),
		Help:        "Requests served from the cached dataset snapshot",
		ConstLabels: labels,
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("snapshot_cache_misses_total"),
		Help:        "Requests that needed a dataset fetch",
		ConstLabels: labels,
	})

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("renders_total"),
		Help:        "Total number of chart renders by output format",
		ConstLabels: labels,
	}, []string{"format"})

	m.renderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("render_duration_milliseconds"),
		Help:        "Chart render latency in milliseconds by output format",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"format"})

	m.renderBytes = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("render_bytes"),
		Help:        "Size of the last rendered artifact by output format",
		ConstLabels: labels,
	}, []string{"format"})

	m.marksRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("marks_rendered_total"),
		Help:        "Total number of data marks placed on charts",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and error type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Errors by HTTP endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("error_latency_milliseconds"),
		Help:        "Latency of failed operations in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_bytes"),
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutines"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_milliseconds"),
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// NewMetricsManager is an alias of NewManager.
func NewMetricsManager(opts ...Option) *Manager { return NewManager(opts...) }

// Dataset metrics.

// RecordDatasetFetch records one fetch attempt with its outcome ("ok" or "error").
func RecordDatasetFetch(source, outcome string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetFetches.WithLabelValues(source, outcome).Inc()
	globalManager.datasetFetchDuration.Observe(latencyMs)
	if outcome == "ok" {
		globalManager.datasetLastFetchUnix.SetToCurrentTime()
	}
}

// UpdateDatasetRecords sets the size of the current snapshot.
func UpdateDatasetRecords(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRecords.Set(float64(count))
}

// RecordCacheHit counts a request answered from the snapshot.
func RecordCacheHit() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a request that triggered a fetch.
func RecordCacheMiss() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheMisses.Inc()
}

// Render metrics.

// RecordRender records one completed render of the given format.
func RecordRender(format string, latencyMs float64, bytes int) {
	if !globalManager.enabled {
		return
	}
	globalManager.renders.WithLabelValues(format).Inc()
	globalManager.renderDuration.WithLabelValues(format).Observe(latencyMs)
	globalManager.renderBytes.WithLabelValues(format).Set(float64(bytes))
}

// RecordMarksRendered adds n placed marks.
func RecordMarksRendered(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.marksRendered.Add(float64(n))
}

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency observes how long a failing operation took.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// sampleSystem reads runtime stats into the system gauges.
func sampleSystem(prevPauseNs uint64, prevNumGC uint32) (uint64, uint32) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	UpdateSystemMemoryUsage(ms.HeapAlloc)
	UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if n := ms.NumGC - prevNumGC; n > 0 {
		avg := float64(ms.PauseTotalNs-prevPauseNs) / float64(n)
		RecordSystemGCPauseTime(avg / float64(time.Millisecond))
	}
	return ms.PauseTotalNs, ms.NumGC
}

// RunSystemSampler samples runtime stats every refresh interval until ctx is done.
func RunSystemSampler(ctx context.Context) {
	if !globalManager.enabled {
		return
	}
	ticker := time.NewTicker(globalManager.refreshInterval)
	defer ticker.Stop()

	pause, gcs := sampleSystem(0, 0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pause, gcs = sampleSystem(pause, gcs)
		}
	}
}

// Register adds an extra collector to the custom registry.
func Register(c prometheus.Collector) error {
	if err := customRegistry.Register(c); err != nil {
		return fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	return nil
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

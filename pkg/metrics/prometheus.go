// Package metrics provides Prometheus metrics for the Cooper assessment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assessment metrics
	assessments      *prometheus.CounterVec
	assessmentErrors *prometheus.CounterVec
	vo2max           *prometheus.HistogramVec
	percentile       prometheus.Histogram

	// Chart rendering
	chartRenderLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton used by Record* helpers
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cooper",
		subsystem:        "vo2max",
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

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_total",
		Help:      "Completed assessments by gender and age bracket",
	}, []string{"gender", "bracket"})

	m.assessmentErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessment_errors_total",
		Help:      "Failed assessments by error kind",
	}, []string{"kind"})

	m.vo2max = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "estimate_ml_kg_min",
		Help:      "Distribution of estimated VO2 max values",
		Buckets:   prometheus.LinearBuckets(10, 5, 14),
	}, []string{"gender"})

	m.percentile = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "percentile",
		Help:      "Distribution of computed percentiles",
		Buckets:   prometheus.LinearBuckets(10, 10, 9),
	})

	m.chartRenderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_render_milliseconds",
		Help:      "Chart rendering latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"format"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordAssessment counts a completed assessment and observes its outputs.
func (m *Manager) RecordAssessment(gender, bracket string, vo2max, pct float64) {
	m.assessments.WithLabelValues(gender, bracket).Inc()
	m.vo2max.WithLabelValues(gender).Observe(vo2max)
	m.percentile.Observe(pct)
}

// RecordAssessmentError counts a failed assessment.
func (m *Manager) RecordAssessmentError(kind string) {
	m.assessmentErrors.WithLabelValues(kind).Inc()
}

// RecordChartRender observes one chart render.
func (m *Manager) RecordChartRender(format string, latencyMs float64) {
	m.chartRenderLatency.WithLabelValues(format).Observe(latencyMs)
}

// RecordHTTPRequest counts one HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordAssessment records on the global manager.
func RecordAssessment(gender, bracket string, vo2max, pct float64) {
	globalManager.RecordAssessment(gender, bracket, vo2max, pct)
}

// RecordAssessmentError records on the global manager.
func RecordAssessmentError(kind string) {
	globalManager.RecordAssessmentError(kind)
}

// RecordChartRender records on the global manager.
func RecordChartRender(format string, latencyMs float64) {
	globalManager.RecordChartRender(format, latencyMs)
}

// RecordHTTPRequest records on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

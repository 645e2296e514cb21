// Package metrics provides Prometheus metrics for the meet scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics
	rescorePasses       prometheus.Counter
	rescoreDurationMS   prometheus.Histogram
	eventsRanked        prometheus.Counter
	entriesRanked       prometheus.Counter
	scoringErrors       prometheus.Counter
	sensitivityRuns     prometheus.Counter
	testSpotComparisons prometheus.Counter

	// Store metrics
	meetCount prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance on a custom registry, so the default Go
// collectors never pollute the exposition.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meetscore",
		subsystem:        "scoring",
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
	factory := promauto.With(m.registry)

	m.rescorePasses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rescore_passes_total",
		Help:      "Number of full meet rescore passes completed.",
	})
	m.rescoreDurationMS = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rescore_duration_ms",
		Help:      "Duration of full meet rescore passes in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.eventsRanked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_ranked_total",
		Help:      "Number of events run through the ranking engine.",
	})
	m.entriesRanked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_ranked_total",
		Help:      "Number of entries placed by the ranking engine.",
	})
	m.scoringErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Number of scoring passes refused with a structural error.",
	})
	m.sensitivityRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sensitivity_runs_total",
		Help:      "Number of sensitivity projections computed.",
	})
	m.testSpotComparisons = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "testspot_comparisons_total",
		Help:      "Number of test-spot candidate comparisons computed.",
	})
	m.meetCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "meets",
		Help:      "Number of meets held in the snapshot store.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "HTTP error responses by endpoint, method, and error type.",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordRescore records one completed rescore pass and its duration.
func RecordRescore(durationMS float64) {
	globalManager.rescorePasses.Inc()
	globalManager.rescoreDurationMS.Observe(durationMS)
}

// RecordEventsRanked counts events and entries placed in one pass.
func RecordEventsRanked(events, entries int) {
	globalManager.eventsRanked.Add(float64(events))
	globalManager.entriesRanked.Add(float64(entries))
}

// RecordScoringError counts a refused scoring pass.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordSensitivityRun counts a computed sensitivity projection.
func RecordSensitivityRun() {
	globalManager.sensitivityRuns.Inc()
}

// RecordTestSpotComparison counts a test-spot comparison.
func RecordTestSpotComparison() {
	globalManager.testSpotComparisons.Inc()
}

// UpdateMeetCount sets the snapshot store meet gauge.
func UpdateMeetCount(count int) {
	globalManager.meetCount.Set(float64(count))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMS float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMS)
}

// RecordErrorByEndpoint counts one HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom registry for exposition handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the answer scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	analysesTotal    prometheus.Counter
	analysisFallback prometheus.Counter
	analysisDuration prometheus.Histogram
	overallScore     prometheus.Histogram

	// Strategy metrics
	strategyLatency  *prometheus.HistogramVec
	strategyFallback *prometheus.CounterVec

	// Agent health
	agentHealthy *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "confida",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of multi-agent analyses performed",
	})

	m.analysisFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_fallback_total",
		Help:      "Total number of analyses that degraded to the combined fallback",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "End-to-end multi-agent analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.overallScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overall_score",
		Help:      "Distribution of combined overall scores on the 0-10 scale",
		Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	})

	m.strategyLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_latency_milliseconds",
			Help:      "Per-strategy analysis latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"strategy"},
	)

	m.strategyFallback = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "strategy_fallback_total",
			Help:      "Per-strategy fallback activations by kind (parse or call)",
		},
		[]string{"strategy", "kind"},
	)

	m.agentHealthy = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "agent_healthy",
			Help:      "Agent health from the last self-test (1 healthy, 0 unhealthy)",
		},
		[]string{"agent"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordAnalysis increments the analyses counter.
func RecordAnalysis() {
	globalManager.analysesTotal.Inc()
}

// RecordAnalysisFallback increments the combined-fallback counter.
func RecordAnalysisFallback() {
	globalManager.analysisFallback.Inc()
}

// RecordAnalysisDuration records an end-to-end analysis duration in milliseconds.
func RecordAnalysisDuration(latencyMs float64) {
	globalManager.analysisDuration.Observe(latencyMs)
}

// RecordOverallScore records a combined overall score.
func RecordOverallScore(score float64) {
	globalManager.overallScore.Observe(score)
}

// RecordStrategyLatency records a single strategy's analysis latency in milliseconds.
func RecordStrategyLatency(strategy string, latencyMs float64) {
	globalManager.strategyLatency.WithLabelValues(strategy).Observe(latencyMs)
}

// RecordStrategyFallback records a strategy fallback activation.
// kind is "parse" for structured-default fallbacks and "call" for heuristic ones.
func RecordStrategyFallback(strategy, kind string) {
	globalManager.strategyFallback.WithLabelValues(strategy, kind).Inc()
}

// UpdateAgentHealth sets the health gauge for an agent.
func UpdateAgentHealth(agent string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1.0
	}
	globalManager.agentHealthy.WithLabelValues(agent).Set(v)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

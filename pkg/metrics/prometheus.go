// Package metrics provides Prometheus metrics for the HoldemDNA analyzer.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "holdemdna"
	subsystem = "analyzer"
)

// Score dimensions used as label values.
const (
	DimensionStrategy   = "strategy"
	DimensionPsychology = "psychology"
	DimensionMental     = "mental"
	DimensionComposite  = "composite"
)

// Manager owns the analyzer's Prometheus collectors.
type Manager struct {
	registry *prometheus.Registry

	analyses         prometheus.Counter
	loadErrors       *prometheus.CounterVec
	scores           *prometheus.HistogramVec
	outcomes         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	sessions         prometheus.Histogram
	lastComposite    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{registry: prometheus.NewRegistry()}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analyses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analyses_total",
		Help:      "Total number of profiles analysed",
	})

	m.loadErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "load_errors_total",
			Help:      "Profiles that could not be loaded, by kind",
		},
		[]string{"kind"},
	)

	m.scores = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "score",
			Help:      "Distribution of produced scores by dimension",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"dimension"},
	)

	m.outcomes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "recommendation_outcomes_total",
			Help:      "Recommendation outcomes emitted",
		},
		[]string{"outcome"},
	)

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent scoring one profile",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 6),
	})

	m.sessions = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "profile_sessions",
		Help:      "Number of sessions in analysed profiles",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	m.lastComposite = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "last_composite_score",
		Help:      "Composite index of the most recent analysis",
	})
}

// RecordAnalysis counts one analysis of a profile with the given history size.
func (m *Manager) RecordAnalysis(d time.Duration, sessions int) {
	m.analyses.Inc()
	m.analysisDuration.Observe(d.Seconds())
	m.sessions.Observe(float64(sessions))
}

// ObserveScores records the three scores and the composite.
func (m *Manager) ObserveScores(strategy, psychology, mental, composite float64) {
	m.scores.WithLabelValues(DimensionStrategy).Observe(strategy)
	m.scores.WithLabelValues(DimensionPsychology).Observe(psychology)
	m.scores.WithLabelValues(DimensionMental).Observe(mental)
	m.scores.WithLabelValues(DimensionComposite).Observe(composite)
	m.lastComposite.Set(composite)
}

// RecordOutcome counts one recommendation outcome.
func (m *Manager) RecordOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

// RecordLoadError counts one failed profile load.
func (m *Manager) RecordLoadError(kind string) {
	m.loadErrors.WithLabelValues(kind).Inc()
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Default returns the global manager backed by the custom registry.
func Default() *Manager {
	return globalManager
}

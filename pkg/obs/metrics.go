package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/revio-dev/revio/pkg/rdom"
)

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "revio").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "revio",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics collects scheduler and reconciler metrics. It implements
// reactive.Observer; register it with reactive.WithObserver on the runtime
// whose flushes it should measure.
//
// Like the runtime it observes, Metrics is not safe for concurrent use: the
// flush callbacks arrive on the runtime's goroutine and the Prometheus
// primitives do their own synchronization for scrapes.
type Metrics struct {
	flushesTotal    prometheus.Counter
	flushDuration   prometheus.Histogram
	flushEffectRuns prometheus.Histogram
	effectRunsTotal prometheus.Counter
	reconcilePasses prometheus.Counter
	reconcileOps    *prometheus.CounterVec

	flushStart time.Time
}

// NewMetrics creates and registers the collector.
//
// Metrics exposed:
//   - revio_flushes_total: Counter of scheduler flush passes
//   - revio_flush_duration_seconds: Histogram of flush duration
//   - revio_flush_effect_runs: Histogram of effect runs per flush
//   - revio_effect_runs_total: Counter of executed effect callbacks
//   - revio_reconcile_passes_total: Counter of list reconciliation passes
//   - revio_reconcile_ops_total: Counter of emitted operations by kind
//
// Expose them the usual way:
//
//	http.Handle("/metrics", promhttp.Handler())
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of scheduler flush passes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Flush pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		flushEffectRuns: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_effect_runs",
			Help:        "Effect callbacks executed per flush pass",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		effectRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of executed effect callbacks",
			ConstLabels: config.ConstLabels,
		}),

		reconcilePasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_passes_total",
			Help:        "Total number of list reconciliation passes",
			ConstLabels: config.ConstLabels,
		}),

		reconcileOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_ops_total",
			Help:        "Total reconciliation operations emitted by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

// FlushStart implements reactive.Observer.
func (m *Metrics) FlushStart() {
	m.flushStart = time.Now()
}

// EffectRun implements reactive.Observer.
func (m *Metrics) EffectRun() {
	m.effectRunsTotal.Inc()
}

// FlushEnd implements reactive.Observer.
func (m *Metrics) FlushEnd(runs int) {
	m.flushesTotal.Inc()
	m.flushDuration.Observe(time.Since(m.flushStart).Seconds())
	m.flushEffectRuns.Observe(float64(runs))
}

// PassObserver adapts the collector to rdom's per-pass hook:
//
//	rdom.BindList(rt, container, items, key, render,
//	    rdom.WithPassObserver(obs.PassObserver[int](metrics)))
func PassObserver[K comparable](m *Metrics) func(ops []rdom.Op[K]) {
	return func(ops []rdom.Op[K]) {
		m.reconcilePasses.Inc()
		detach, update, insert, move := rdom.CountKinds(ops)
		m.reconcileOps.WithLabelValues(rdom.OpDetach.String()).Add(float64(detach))
		m.reconcileOps.WithLabelValues(rdom.OpUpdate.String()).Add(float64(update))
		m.reconcileOps.WithLabelValues(rdom.OpInsert.String()).Add(float64(insert))
		m.reconcileOps.WithLabelValues(rdom.OpMove.String()).Add(float64(move))
	}
}

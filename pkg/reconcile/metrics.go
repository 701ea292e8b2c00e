package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the reconciler's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reconcile").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
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

// WithBuckets sets the histogram buckets.
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
		Namespace: "vtree",
		Subsystem: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the reconciler's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	mounts       *prometheus.CounterVec
	updates      *prometheus.CounterVec
	unmounts     *prometheus.CounterVec
	replacements prometheus.Counter
	moves        prometheus.Counter
	renders      prometheus.Counter
	renderErrors prometheus.Counter
	hookPanics   *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	liveRefs     prometheus.Gauge
}

// NewMetrics registers the reconciler collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	return &Metrics{
		mounts:       factory.NewCounterVec(counterOpts("mounts_total", "Vnodes mounted, by kind"), []string{"kind"}),
		updates:      factory.NewCounterVec(counterOpts("updates_total", "Vnodes updated in place, by kind"), []string{"kind"}),
		unmounts:     factory.NewCounterVec(counterOpts("unmounts_total", "Refs unmounted, by kind"), []string{"kind"}),
		replacements: factory.NewCounter(counterOpts("replacements_total", "Refs replaced because the new vnode was incompatible")),
		moves:        factory.NewCounter(counterOpts("moves_total", "Native nodes relocated during list reconciliation")),
		renders:      factory.NewCounter(counterOpts("renders_total", "Scheduled component re-renders")),
		renderErrors: factory.NewCounter(counterOpts("render_errors_total", "Scheduled component re-renders that failed")),
		hookPanics:   factory.NewCounterVec(counterOpts("hook_panics_total", "Lifecycle hook subscribers that panicked, by event"), []string{"event"}),
		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Duration of top-level reconciliation passes",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),
		liveRefs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_refs",
			Help:        "Refs currently held in the arena",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) mounted(kind string) {
	if m != nil {
		m.mounts.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) updated(kind string) {
	if m != nil {
		m.updates.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) unmounted(kind string) {
	if m != nil {
		m.unmounts.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) replaced() {
	if m != nil {
		m.replacements.Inc()
	}
}

func (m *Metrics) moved() {
	if m != nil {
		m.moves.Inc()
	}
}

func (m *Metrics) rendered(err error) {
	if m == nil {
		return
	}
	m.renders.Inc()
	if err != nil {
		m.renderErrors.Inc()
	}
}

func (m *Metrics) hookPanicked(event string, n int) {
	if m != nil && n > 0 {
		m.hookPanics.WithLabelValues(event).Add(float64(n))
	}
}

func (m *Metrics) pass(op string, start time.Time, live int) {
	if m == nil {
		return
	}
	m.passDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.liveRefs.Set(float64(live))
}

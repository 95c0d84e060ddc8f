package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cycle duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the engine metrics.
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
		Subsystem: "engine",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	mounts        *prometheus.CounterVec
	updates       *prometheus.CounterVec
	renders       *prometheus.CounterVec
	hostOps       *prometheus.CounterVec
	tagMismatches prometheus.Counter
	cycles        *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	instances     prometheus.Gauge
}

// NewMetrics creates and registers the engine metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of virtual nodes mounted",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Total number of virtual nodes reconciled in place",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_ops_total",
			Help:        "Total number of host adapter calls",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		tagMismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tag_mismatches_total",
			Help:        "Total number of updates skipped because the tags differed",
			ConstLabels: config.ConstLabels,
		}),

		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycles_total",
			Help:        "Total number of mount, update and set-state cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		cycleDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycle_duration_seconds",
			Help:        "Cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		instances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances",
			Help:        "Number of component instances created",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) mounted(kind vdom.VKind) {
	if m == nil {
		return
	}
	m.mounts.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) updated(kind vdom.VKind) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) rendered(component string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component).Inc()
}

func (m *Metrics) instanceCreated() {
	if m == nil {
		return
	}
	m.instances.Inc()
}

func (m *Metrics) tagMismatch() {
	if m == nil {
		return
	}
	m.tagMismatches.Inc()
}

func (m *Metrics) cycle(kind CommitKind, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.cycles.WithLabelValues(kind.String(), status).Inc()
	m.cycleDuration.WithLabelValues(kind.String()).Observe(d.Seconds())
}

func (m *Metrics) hostOp(op host.Op) {
	if m == nil {
		return
	}
	m.hostOps.WithLabelValues(op.String()).Inc()
}

// countingAdapter counts every adapter call before forwarding it.
type countingAdapter struct {
	next    host.Adapter
	metrics *Metrics
}

func (a *countingAdapter) CreateNode(tag string) host.Node {
	a.metrics.hostOp(host.OpCreateNode)
	return a.next.CreateNode(tag)
}

func (a *countingAdapter) SetText(parent host.Node, text string) {
	a.metrics.hostOp(host.OpSetText)
	a.next.SetText(parent, text)
}

func (a *countingAdapter) SetClass(n host.Node, class string) {
	a.metrics.hostOp(host.OpSetClass)
	a.next.SetClass(n, class)
}

func (a *countingAdapter) SetStyle(n host.Node, prop, value string) {
	a.metrics.hostOp(host.OpSetStyle)
	a.next.SetStyle(n, prop, value)
}

func (a *countingAdapter) AppendChild(parent, child host.Node) {
	a.metrics.hostOp(host.OpAppendChild)
	a.next.AppendChild(parent, child)
}

func (a *countingAdapter) RemoveChild(parent, child host.Node) {
	a.metrics.hostOp(host.OpRemoveChild)
	a.next.RemoveChild(parent, child)
}

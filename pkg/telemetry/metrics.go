package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
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

// WithBuckets sets the duration histogram buckets.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records engine events. Create one per registry: registering the
// same names twice panics.
type Metrics struct {
	renders        *prometheus.CounterVec
	iterations     prometheus.Histogram
	mutations      *prometheus.CounterVec
	diagnostics    *prometheus.CounterVec
	commits        *prometheus.CounterVec
	commitDuration *prometheus.HistogramVec
	actions        *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
}

var _ engine.Observer = (*Metrics)(nil)

// NewMetrics registers the collectors and returns the observer.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_renders_total",
			Help:        "Total number of stabilized component renders",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		iterations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_iterations",
			Help:        "Render loop passes needed for a component to stabilize",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 3, 5, 8, 11},
		}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of backend mutations by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Total number of reported diagnostics",
			ConstLabels: config.ConstLabels,
		}, []string{"code", "severity"}),

		commits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of reconciliation passes",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger", "status"}),

		commitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commit_duration_seconds",
			Help:        "Reconciliation pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"trigger"}),

		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "actions_total",
			Help:        "Total number of preview actions run",
			ConstLabels: config.ConstLabels,
		}, []string{"action", "status"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "action_duration_seconds",
			Help:        "Preview action duration in seconds, render included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"action"}),
	}
}

// ComponentRendered implements engine.Observer.
func (m *Metrics) ComponentRendered(component string, iterations int) {
	m.renders.WithLabelValues(component).Inc()
	m.iterations.Observe(float64(iterations))
}

// Committed implements engine.Observer.
func (m *Metrics) Committed(c engine.Commit) {
	for op, n := range c.Mutations {
		m.mutations.WithLabelValues(op.String()).Add(float64(n))
	}
	m.commits.WithLabelValues(c.Trigger, status(c.Err)).Inc()
	m.commitDuration.WithLabelValues(c.Trigger).Observe(c.Duration.Seconds())
}

// Diagnostic implements engine.Observer.
func (m *Metrics) Diagnostic(d *errors.Error) {
	m.diagnostics.WithLabelValues(d.Code, strings.ToLower(d.Severity.String())).Inc()
}

// RecordAction records one preview action.
func (m *Metrics) RecordAction(name string, err error, d time.Duration) {
	m.actions.WithLabelValues(name, status(err)).Inc()
	m.actionDuration.WithLabelValues(name).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

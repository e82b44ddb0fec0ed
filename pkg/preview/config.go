package preview

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

// Config holds the preview server configuration.
type Config struct {
	// Address is the listen address. Default: "localhost:7070".
	Address string

	// App is the demo app to serve. Default: "counter".
	App string

	// MetricsPath is where metrics are exposed. Default: "/metrics".
	MetricsPath string

	// MetricsNamespace prefixes metric names. Default: "vtree".
	MetricsNamespace string

	// NoMetrics removes the metrics route. Metrics are still recorded.
	NoMetrics bool

	// ShutdownTimeout bounds graceful shutdown. Default: 5s.
	ShutdownTimeout time.Duration

	// EngineOptions are applied before the server's own observer, tracer
	// and logger options.
	EngineOptions []engine.Option

	// Backend renders the app. Default: dom.NewHTML(). It must operate on
	// *html.Node containers.
	Backend dom.Backend

	// Store receives snapshots from POST /snapshot. Nil disables it.
	Store snapshot.Store

	// Registry collects the server's metrics. Default: a fresh registry.
	Registry *prometheus.Registry

	// TracerProvider creates the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:7070",
		App:             "counter",
		MetricsPath:     "/metrics",
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.App == "" {
		out.App = defaults.App
	}
	if out.MetricsPath == "" {
		out.MetricsPath = defaults.MetricsPath
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

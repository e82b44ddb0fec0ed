package engine

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// HookMismatchPolicy decides what happens to an instance's state when its
// hook count changes between renders.
type HookMismatchPolicy uint8

const (
	// HookMismatchWarn logs the mismatch and keeps the slots as they are.
	HookMismatchWarn HookMismatchPolicy = iota

	// HookMismatchReset logs the mismatch and drops every slot, so the next
	// render starts from the initial values.
	HookMismatchReset
)

// String returns the string representation of the policy.
func (p HookMismatchPolicy) String() string {
	switch p {
	case HookMismatchWarn:
		return "warn"
	case HookMismatchReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseHookMismatchPolicy maps "warn" or "reset" to a policy.
func ParseHookMismatchPolicy(s string) (HookMismatchPolicy, bool) {
	switch s {
	case "", "warn":
		return HookMismatchWarn, true
	case "reset":
		return HookMismatchReset, true
	default:
		return HookMismatchWarn, false
	}
}

// DefaultMaxRerenders bounds the render loop of a single component.
const DefaultMaxRerenders = 10

// Config holds engine settings.
type Config struct {
	// MaxRerenders is the number of extra renders a component may trigger
	// by setting its own state before the loop is broken. Default: 10.
	MaxRerenders int

	// DisposeOnUnmount removes an instance from the registry when its
	// component leaves the tree. Default: true.
	DisposeOnUnmount bool

	// HookMismatch is applied when a component's hook count changes.
	HookMismatch HookMismatchPolicy

	// Logger receives diagnostics. Default: slog.Default().
	Logger *slog.Logger

	// Observer is notified of renders, commits and diagnostics.
	Observer Observer

	// Tracer creates one span per commit. Default: the global provider's tracer.
	Tracer trace.Tracer

	// OnError is called when a setter-driven update fails. The error is
	// logged either way.
	OnError func(error)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxRerenders:     DefaultMaxRerenders,
		DisposeOnUnmount: true,
		HookMismatch:     HookMismatchWarn,
	}
}

// Option configures an Engine.
type Option func(*Config)

// WithConfig replaces the whole configuration. A non-positive
// MaxRerenders falls back to the default.
func WithConfig(c Config) Option {
	return func(cfg *Config) {
		*cfg = c
	}
}

// WithMaxRerenders sets the render loop bound.
func WithMaxRerenders(n int) Option {
	return func(c *Config) {
		c.MaxRerenders = n
	}
}

// WithDisposeOnUnmount controls instance disposal.
func WithDisposeOnUnmount(dispose bool) Option {
	return func(c *Config) {
		c.DisposeOnUnmount = dispose
	}
}

// WithHookMismatch sets the hook mismatch policy.
func WithHookMismatch(p HookMismatchPolicy) Option {
	return func(c *Config) {
		c.HookMismatch = p
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithObserver sets the observer.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// WithTracer sets the tracer used for commit spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithErrorHandler sets the handler for failed updates.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) {
		c.OnError = fn
	}
}

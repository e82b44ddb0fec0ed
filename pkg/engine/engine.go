package engine

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

const tracerName = "github.com/vango-dev/vtree/pkg/engine"

// Engine renders component trees onto a Backend.
type Engine struct {
	cfg      Config
	backend  *dom.Recorder
	registry *Registry
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer

	// depth counts nested commits; only the outermost one is reported.
	depth int
}

// New creates an engine drawing on backend.
func New(backend dom.Backend, opts ...Option) *Engine {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxRerenders <= 0 {
		cfg.MaxRerenders = DefaultMaxRerenders
	}

	e := &Engine{
		cfg:      cfg,
		backend:  dom.NewRecorder(backend),
		registry: NewRegistry(),
		logger:   cfg.Logger,
		observer: cfg.Observer,
		tracer:   cfg.Tracer,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.observer == nil {
		e.observer = NopObserver{}
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	return e
}

var defaultEngine = New(dom.NewHTML())

// Default returns the process-wide engine backed by dom.HTML.
func Default() *Engine {
	return defaultEngine
}

// SetDefault replaces the process-wide engine.
func SetDefault(e *Engine) {
	defaultEngine = e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Registry returns the instance registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Backend returns the backend mutations are applied to.
func (e *Engine) Backend() dom.Backend {
	return e.backend
}

// Logger returns the diagnostics logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Reset drops every instance. Mounted trees must not be updated afterwards.
func (e *Engine) Reset() {
	e.registry.Clear()
}

// report logs a diagnostic and forwards it to the observer.
func (e *Engine) report(d *errors.Error) {
	e.logger.Log(context.Background(), d.Severity.Level(), d.Message, d.LogAttrs()...)
	e.observer.Diagnostic(d)
}

// fail reports an error from an update nobody can return it to.
func (e *Engine) fail(inst *Instance, err error) {
	d := errors.New(errors.CodeUpdateFailed).WithComponent(inst.Name()).Wrap(err)
	e.report(d)
	if e.cfg.OnError != nil {
		e.cfg.OnError(d)
	}
}

// commit runs one reconciliation pass inside a span and reports the
// mutations it caused.
func (e *Engine) commit(ctx context.Context, trigger, component string, fn func() error) error {
	if e.depth > 0 {
		return fn()
	}
	e.depth++
	defer func() { e.depth-- }()

	ctx, span := e.tracer.Start(ctx, "vtree."+trigger,
		trace.WithAttributes(
			attribute.String("vtree.trigger", trigger),
			attribute.String("vtree.component", component),
		),
	)
	defer span.End()

	e.backend.Reset()
	start := time.Now()
	err := fn()

	c := Commit{
		Trigger:   trigger,
		Component: component,
		Mutations: make(map[dom.OpKind]int),
		Duration:  time.Since(start),
		Err:       err,
	}
	for _, op := range e.backend.Ops() {
		c.Mutations[op.Kind]++
	}
	e.backend.Reset()

	span.SetAttributes(attribute.Int("vtree.mutations", c.Total()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	e.logger.DebugContext(ctx, "commit",
		slog.String("trigger", trigger),
		slog.String("component", component),
		slog.Int("mutations", c.Total()),
		slog.Duration("duration", c.Duration),
	)
	e.observer.Committed(c)
	return err
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n dom.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

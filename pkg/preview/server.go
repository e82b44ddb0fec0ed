package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	htmlnode "golang.org/x/net/html"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/telemetry"
)

// Server serves one mounted demo app.
type Server struct {
	config *Config

	// mu guards the engine, the mounted app and the fields below it.
	// Broadcasts happen under mu so clients see updates in commit order.
	mu        sync.Mutex
	app       demo.App
	mount     *demo.Mount
	engine    *engine.Engine
	root      *engine.Root
	container *htmlnode.Node
	last      engine.Commit
	updateErr error
	seq       uint64

	metrics  *telemetry.Metrics
	tracing  *telemetry.Tracing
	hub      *hub
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger

	httpServer *http.Server
}

// New mounts the configured app and builds the routes.
func New(config *Config) (*Server, error) {
	config = config.withDefaults()

	app, err := demo.Get(config.App)
	if err != nil {
		return nil, err
	}

	logger := config.Logger.With("component", "preview", "app", app.Name)
	s := &Server{
		config:   config,
		app:      app,
		hub:      newHub(logger),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger,
	}

	metricsOpts := []telemetry.MetricsOption{telemetry.WithRegistry(config.Registry)}
	if config.MetricsNamespace != "" {
		metricsOpts = append(metricsOpts, telemetry.WithNamespace(config.MetricsNamespace))
	}
	s.metrics = telemetry.NewMetrics(metricsOpts...)

	tracingOpts := []telemetry.TracingOption{telemetry.WithAttributes(attribute.String("vtree.app", app.Name))}
	if config.TracerProvider != nil {
		tracingOpts = append(tracingOpts, telemetry.WithTracerProvider(config.TracerProvider))
	}
	s.tracing = telemetry.NewTracing(tracingOpts...)

	var user engine.Config
	for _, opt := range config.EngineOptions {
		opt(&user)
	}
	opts := append([]engine.Option{}, config.EngineOptions...)
	opts = append(opts,
		engine.WithObserver(engine.Observers{s.metrics, commitTracker{s}}),
		engine.WithTracer(s.tracing.Tracer()),
		engine.WithLogger(logger),
		engine.WithErrorHandler(func(err error) {
			s.updateErr = err
			if user.OnError != nil {
				user.OnError(err)
			}
		}),
	)
	backend := config.Backend
	if backend == nil {
		backend = dom.NewHTML()
	}
	s.engine = engine.New(backend, opts...)

	s.container = dom.NewContainer("main")
	s.root, err = s.engine.CreateRoot(s.container)
	if err != nil {
		return nil, err
	}
	s.mount = app.New()
	if err := s.root.Render(s.mount.Tree); err != nil {
		return nil, err
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Post("/snapshot", s.handleStore)
	r.Get("/actions", s.handleActions)
	r.Post("/actions/{name}", s.handleAction)
	r.Get("/ws", s.handleWebSocket)
	if !s.config.NoMetrics {
		r.Method(http.MethodGet, s.config.MetricsPath, telemetry.Handler(s.config.Registry))
	}
	return r
}

// commitTracker remembers the last commit for action responses.
type commitTracker struct {
	s *Server
}

func (commitTracker) ComponentRendered(string, int) {}
func (commitTracker) Diagnostic(*errors.Error)      {}
func (t commitTracker) Committed(c engine.Commit)   { t.s.last = c }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// App returns the served app.
func (s *Server) App() demo.App {
	return s.app
}

// HTML returns the current rendered markup.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dom.InnerHTML(s.container)
}

// Clients returns the number of live connections.
func (s *Server) Clients() int {
	return s.hub.size()
}

// Dispatch runs the named action and pushes the result to live clients.
// A failed re-render triggered by the action is returned as its error.
func (s *Server) Dispatch(ctx context.Context, name string) (Update, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = engine.Commit{}
	s.updateErr = nil
	err := s.tracing.Trace(ctx, "vtree.action", func(context.Context) error {
		if err := s.mount.Run(name); err != nil {
			return err
		}
		return s.updateErr
	}, attribute.String("vtree.action", name))
	s.metrics.RecordAction(name, err, time.Since(start))

	s.seq++
	msg := Update{
		Type:      "render",
		Seq:       s.seq,
		HTML:      dom.InnerHTML(s.container),
		Action:    name,
		Mutations: s.last.Total(),
	}
	if err != nil {
		return msg, err
	}
	s.logger.Debug("action", "action", name, "mutations", msg.Mutations)
	s.hub.broadcast(msg)
	return msg, nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body := dom.InnerHTML(s.container)
	actions := s.mount.Actions()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageHead, html.EscapeString(s.app.Name))
	for _, a := range actions {
		name := html.EscapeString(a)
		fmt.Fprintf(w, `<button data-action="%s">%s</button>`, name, name)
	}
	fmt.Fprintf(w, pageBody, body)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.HTML())
}

func (s *Server) handleStore(w http.ResponseWriter, r *http.Request) {
	if s.config.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot store configured")
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = fmt.Sprintf("%s-%d", s.app.Name, time.Now().Unix())
	}

	location, err := s.config.Store.Put(r.Context(), name, []byte(s.HTML()))
	if err != nil {
		s.logger.Error("snapshot failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("snapshot stored", "location", location)
	writeJSON(w, http.StatusCreated, map[string]string{"location": location})
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	actions := s.mount.Actions()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"app": s.app.Name, "actions": actions})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Dispatch(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		var ve *errors.Error
		if stderrors.As(err, &ve) && ve.Code == errors.CodeUnknownAction {
			writeError(w, http.StatusNotFound, ve.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	s.mu.Lock()
	err = s.hub.add(conn, Update{Type: "render", Seq: s.seq, HTML: dom.InnerHTML(s.container)})
	s.mu.Unlock()
	if err != nil {
		s.logger.Debug("live client write failed", "error", err)
		conn.Close()
		return
	}

	// Clients only listen. Reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.remove(conn)
			return
		}
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes live connections, stops the HTTP server and unmounts
// the app.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.hub.closeAll()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.mu.Lock()
	err := s.root.Unmount()
	s.mu.Unlock()

	s.logger.Info("preview server stopped")
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const pageHead = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<nav>`

const pageBody = `</nav>
<main id="root">%s</main>
<script>
(function () {
  var root = document.getElementById("root");
  document.querySelectorAll("button[data-action]").forEach(function (b) {
    b.addEventListener("click", function () {
      fetch("/actions/" + b.dataset.action, {method: "POST"});
    });
  });
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (e) {
    root.innerHTML = JSON.parse(e.data).html;
  };
})();
</script>
</body>
</html>
`

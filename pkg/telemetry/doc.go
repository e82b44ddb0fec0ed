// Package telemetry exports engine activity to Prometheus and OpenTelemetry.
//
// Metrics implements engine.Observer:
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	eng := engine.New(dom.NewHTML(), engine.WithObserver(m))
//	http.Handle("/metrics", telemetry.Handler(reg))
//
// Metrics collected:
//   - vtree_component_renders_total: Counter of stabilized renders by component
//   - vtree_render_iterations: Histogram of render loop passes per render
//   - vtree_mutations_total: Counter of backend mutations by op
//   - vtree_diagnostics_total: Counter of diagnostics by code and severity
//   - vtree_commits_total: Counter of commits by trigger and status
//   - vtree_commit_duration_seconds: Histogram of commit duration by trigger
//   - vtree_actions_total: Counter of preview actions by name and status
//   - vtree_action_duration_seconds: Histogram of action duration by name
//
// Spans come from the global OpenTelemetry tracer provider; see Tracer and
// Trace.
package telemetry

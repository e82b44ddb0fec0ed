// Package preview serves a demo app over HTTP.
//
// The server owns one engine and one mounted app. Actions posted to
// /actions/{name} mutate the app's state; the re-rendered markup is pushed
// to every client connected on /ws.
//
//	srv, err := preview.New(&preview.Config{App: "counter"})
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
//
// Routes:
//
//	GET  /                 page with the rendered app and a live-reload script
//	GET  /snapshot         the rendered app markup
//	POST /snapshot         store the markup in the configured snapshot store
//	GET  /actions          action names
//	POST /actions/{name}   run an action
//	GET  /ws               live updates
//	GET  /metrics          Prometheus metrics
package preview

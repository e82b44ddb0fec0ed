package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/preview"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		port    int
		host    string
		app     string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo app with live updates",
		Long: `Serve a demo app. Its actions are buttons on the page and
every re-render is pushed to connected browsers.

Examples:
  vtree serve
  vtree serve --app todo --port 8080
  vtree serve --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if app != "" {
				cfg.Preview.App = app
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			pc := &preview.Config{
				Address:          cfg.Address(),
				App:              cfg.Preview.App,
				MetricsPath:      cfg.Metrics.Path,
				MetricsNamespace: cfg.Metrics.Namespace,
				NoMetrics:        !cfg.Metrics.Enabled,
				EngineOptions:    cfg.EngineOptions(),
				Logger:           logger,
			}
			if cfg.Snapshot.Target != "" {
				pc.Store, err = snapshot.Open(cfg.Snapshot.Target, snapshot.S3Config{
					Region:    cfg.Snapshot.Region,
					Endpoint:  cfg.Snapshot.Endpoint,
					PathStyle: cfg.Snapshot.PathStyle,
				})
				if err != nil {
					return err
				}
			}

			srv, err := preview.New(pc)
			if err != nil {
				return err
			}

			w := cmd.ErrOrStderr()
			success(w, "Serving %s at http://%s", cfg.Preview.App, cfg.Address())
			if cfg.Metrics.Enabled {
				info(w, "metrics at http://%s%s", cfg.Address(), cfg.Metrics.Path)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default "+strconv.Itoa(config.DefaultPort)+" or from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVarP(&app, "app", "a", "", "Demo app to serve (default from config)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics")

	return cmd
}

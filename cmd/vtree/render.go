package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

func renderCmd(opts *options) *cobra.Command {
	var (
		app      string
		actions  []string
		out      string
		snapName string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo app to HTML",
		Long: `Render a demo app, run the given actions in order, and print
the resulting markup.

Examples:
  vtree render --app counter
  vtree render --app keyed --action insert --action reverse
  vtree render --app todo --action add --out todo.html
  vtree render --app list --snapshot list-initial`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, app, actions, out, snapName)
		},
	}

	cmd.Flags().StringVarP(&app, "app", "a", "", "Demo app to render (default from config)")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "Action to run after the first render (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the markup to a file instead of stdout")
	cmd.Flags().StringVar(&snapName, "snapshot", "", "Also store the markup under this name in the snapshot target")

	return cmd
}

func runRender(cmd *cobra.Command, opts *options, appName string, actions []string, out, snapshotName string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	if appName == "" {
		appName = cfg.Preview.App
	}
	app, err := demo.Get(appName)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	e := engine.New(dom.NewHTML(), append(cfg.EngineOptions(), engine.WithLogger(logger))...)
	container := dom.NewContainer("main")
	root, err := e.CreateRoot(container)
	if err != nil {
		return err
	}

	start := time.Now()
	m := app.New()
	if err := root.RenderContext(cmd.Context(), m.Tree); err != nil {
		return err
	}
	for _, action := range actions {
		if err := m.Run(action); err != nil {
			return err
		}
	}
	markup := dom.InnerHTML(container)
	logger.Debug("rendered", "app", app.Name, "actions", len(actions), "duration", time.Since(start))

	if snapshotName != "" {
		store, err := snapshot.Open(cfg.Snapshot.Target, snapshot.S3Config{
			Region:    cfg.Snapshot.Region,
			Endpoint:  cfg.Snapshot.Endpoint,
			PathStyle: cfg.Snapshot.PathStyle,
		})
		if err != nil {
			return err
		}
		location, err := store.Put(cmd.Context(), snapshotName, []byte(markup))
		if err != nil {
			return err
		}
		success(cmd.ErrOrStderr(), "Stored snapshot at %s", location)
	}

	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), markup)
		return nil
	}
	if err := os.WriteFile(out, []byte(markup+"\n"), 0o644); err != nil {
		return err
	}
	success(cmd.ErrOrStderr(), "Wrote %s", out)
	return nil
}

// Command vtree renders the demo apps and serves them for preview.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render and preview virtual tree apps",
		Long: `vtree mounts component trees onto an HTML document.

It renders the built-in demo apps to static markup, runs their
actions to exercise the reconciler, and serves them with live
updates over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: vtree.json/yaml/toml found upwards)")

	rootCmd.AddCommand(
		renderCmd(opts),
		serveCmd(opts),
		appsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// load reads the config file named by --config, or the project config
// found from the working directory.
func (o *options) load() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.LoadOptional(".")
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

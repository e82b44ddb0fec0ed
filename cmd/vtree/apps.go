package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
)

func appsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the demo apps and their actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range demo.Names() {
				app, err := demo.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-10s %s\n", app.Name, app.Description)
				info(w, "actions: %s", strings.Join(app.New().Actions(), ", "))
			}
			return nil
		},
	}
}

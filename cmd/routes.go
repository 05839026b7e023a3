package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/bootstrap"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	infralogger "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/router"
)

const systemVersionLabel = "-"

func newRoutesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every registered route",
		Long:  `Build the application from the current settings and print its route manifest.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewProvider(opts.configPath).Get()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			app, err := bootstrap.NewApplication(cfg, infralogger.NewNop())
			if err != nil {
				return fmt.Errorf("application: %w", err)
			}

			renderRoutes(cmd.OutOrStdout(), app.Manifest)
			return nil
		},
	}
}

func renderRoutes(out io.Writer, manifest router.Manifest) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Version", "Method", "Path", "Name", "Tags"})
	for _, e := range manifest {
		version := e.Version
		if version == "" {
			version = systemVersionLabel
		}
		t.AppendRow(table.Row{version, e.Method, e.Path, e.Name, strings.Join(e.Tags, ",")})
	}

	t.Render()
}

// Package cmd implements the command-line interface of the CaloriAI backend.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
	infraconfig "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/config"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand builds the command tree. Running it without a subcommand serves
// the API.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           domain.ServiceName,
		Short:         "CaloriAI food scanner backend",
		Long:          `HTTP backend for the CaloriAI mobile application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(
		&opts.configPath,
		"config",
		infraconfig.GetConfigPath(config.DefaultPath),
		"config file (default is $CONFIG_PATH or ./config.yml)",
	)

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newRoutesCommand(opts))
	root.AddCommand(newVersionCommand(opts))

	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

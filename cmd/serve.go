package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/bootstrap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	return bootstrap.Start(ctx, opts.configPath)
}

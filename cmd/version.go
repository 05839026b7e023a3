package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
)

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the configured application version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewProvider(opts.configPath).Get()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", domain.ServiceName, cfg.App.Version)
			return err
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pvkg/pvqa/internal/config"
	"github.com/pvkg/pvqa/internal/pvqa"
)

func newQueryCmd(dotenvPath, yamlPath *string) *cobra.Command {
	var maxIterations int

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Run a single pharmacovigilance question end-to-end and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dotenvPath, *yamlPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			svc, err := pvqa.New(ctx, cfg, nil)
			if err != nil {
				return fmt.Errorf("build service: %w", err)
			}

			result := svc.RunQuery(ctx, args[0], maxIterations)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "override max ReAct iterations (0 uses the configured default)")
	return cmd
}

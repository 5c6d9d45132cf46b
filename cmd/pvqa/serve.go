package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	"github.com/pvkg/pvqa/internal/config"
	"github.com/pvkg/pvqa/internal/httpapi"
	"github.com/pvkg/pvqa/internal/pvqa"
	"github.com/pvkg/pvqa/internal/telemetry"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(dotenvPath, yamlPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server exposing POST /v1/query and GET /v1/health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*dotenvPath, *yamlPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			ctx = log.Context(ctx, log.WithFormat(log.FormatJSON))
			logger := telemetry.NewClueLogger()

			svc, err := pvqa.New(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("build service: %w", err)
			}

			httpServer := &http.Server{
				Addr:         cfg.HTTPAddr,
				Handler:      httpapi.NewRouter(svc),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 5 * time.Minute,
			}

			errCh := make(chan error, 1)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer shutdownCancel()
				return httpServer.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}
	return cmd
}

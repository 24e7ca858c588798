package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/materials-advisor/advisor/internal/adapters/driving/api"
	"github.com/materials-advisor/advisor/internal/logger"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  POST /api/wrap       Ask the advisor with wrap context and conversation
  GET  /check/healthy  Health check with corpus state`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if advisorService == nil || retrievalService == nil {
		return fmt.Errorf("advisor: %w", errNotConfigured)
	}

	cfg := settings().Server
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server := api.NewServer(cfg, advisorService, retrievalService)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen()
	}()

	load := retrievalService.Corpus(ctx)
	logger.Info("listening on %s (corpus %s, %d documents)", cfg.Addr, load.State, len(load.Documents))
	cmd.Printf("Listening on %s\n", cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

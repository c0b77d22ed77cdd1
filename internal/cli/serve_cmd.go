package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/api"
	"github.com/alexanderramin/estimator/internal/llm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var (
		addr   string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger
			if logger == nil {
				logger = slog.Default()
			}
			if !noSeed {
				res, err := runSeed(cmd.Context(), app, app.CatalogFile)
				if err != nil {
					return fmt.Errorf("seeding defaults: %w", err)
				}
				logger.Info("seeded defaults", "modules", res.ModulesCreated, "rates", res.RatesCreated)
			}
			logLLMStatus(cmd.Context(), app.LLM, logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewServer(app.apiServices(), app.API, logger).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return runServer(cmd.Context(), srv, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Addr, "Listen address")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip seeding the default catalog on startup")
	return cmd
}

// logLLMStatus reports whether decomposition will reach a model or fall back
// to catalog heuristics.
func logLLMStatus(ctx context.Context, client llm.LLMClient, logger *slog.Logger) {
	if client == nil {
		logger.Info("llm not configured, decomposition uses catalog heuristics")
		return
	}
	if client.Available(ctx) {
		logger.Info("llm endpoint available")
		return
	}
	logger.Warn("llm endpoint unreachable, decomposition falls back to catalog heuristics")
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/efreitasn/fuelcalc/internal/config"
	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/engine"
	"github.com/efreitasn/fuelcalc/internal/handler"
	"github.com/efreitasn/fuelcalc/internal/service"
	"github.com/efreitasn/fuelcalc/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the calculator HTTP API",
		Long:  "Run the calculator HTTP API. Configuration is read from the environment (PORT, LOG_LEVEL, CURRENCY, SESSION_TTL, ...).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Flags().Changed("currency"))
		},
	}
}

func serve(currencyFlag bool) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return err
	}
	// An explicit --currency overrides CURRENCY.
	if currencyFlag {
		if cfg.Currency, err = domain.ParseCurrency(currencyCode); err != nil {
			return err
		}
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	sessionStore := store.NewSessionStore()
	expiryMgr := engine.NewExpiryManager(cfg.SessionSweepInterval, nil)

	calcSvc := service.NewCalculatorService(cfg.Currency)
	sessionSvc := service.NewSessionService(sessionStore, expiryMgr, calcSvc, cfg.SessionTTL, logger)

	router := handler.NewRouter(calcSvc, sessionSvc, logger)

	// Start the session sweeper with a cancellable context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expiryMgr.Start(ctx)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("currency", cfg.Currency.Code()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for SIGINT/SIGTERM or a listener failure.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	// Graceful shutdown: stop HTTP server, cancel context (stops the sweeper).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
	return nil
}

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/service"
)

var currencyCode string

// Execute builds the fuelcalc command tree and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:          "fuelcalc",
		Short:        "Fuel cost calculator",
		SilenceUsage: true,
	}

	defaultCurrency := os.Getenv("CURRENCY")
	if defaultCurrency == "" {
		defaultCurrency = "PLN"
	}
	root.PersistentFlags().StringVar(&currencyCode, "currency", defaultCurrency, "ISO 4217 code costs are labelled with")

	root.AddCommand(serveCmd(), evalCmd(), formCmd(), healthcheckCmd())
	return root.Execute()
}

// newCalculator builds a calculator for the --currency flag.
func newCalculator() (*service.CalculatorService, error) {
	curr, err := domain.ParseCurrency(currencyCode)
	if err != nil {
		return nil, err
	}
	return service.NewCalculatorService(curr), nil
}

// newLogger returns a JSON slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

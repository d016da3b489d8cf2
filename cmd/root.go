// Package cmd implements the link2itinerary CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/link2itinerary/config"
	"github.com/gaurav-prasanna/link2itinerary/logger"
)

var (
	flagConfig string

	appCfg *config.Config
	appLog logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "link2itinerary",
	Short: "Turn a travel web page into a day-by-day itinerary",
	Long: `link2itinerary fetches a travel-related web page, extracts its readable text
and asks a generative backend for a schema-constrained itinerary. When the
backend fails, a deterministic placeholder itinerary is returned instead.

Usage:
  link2itinerary serve
  link2itinerary plan <url> [flags]`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./config.yaml or ./configs/config.yaml when present)")
}

// setup loads configuration and the logger before any subcommand runs.
func setup(*cobra.Command, []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	appCfg, appLog = cfg, log
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

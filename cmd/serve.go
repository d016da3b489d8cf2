package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/link2itinerary/metrics"
	"github.com/gaurav-prasanna/link2itinerary/server"
	"github.com/gaurav-prasanna/link2itinerary/trips"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API",
	Long: `Serve exposes the planner and the trip seed store over HTTP:

  POST /api/planner/from-url   {"url": "..."}
  POST /api/planner/teaser     {"tripId": "..."}
  POST /api/trips/seed, GET /api/trips, GET|PATCH|DELETE /api/trips/:id
  GET  /health, /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := newPlanner(ctx, appCfg, appLog, metrics.Prometheus{})
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, appCfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLog.WithError(err).Warn("closing trip store", nil)
		}
	}()

	appLog.Info("starting link2itinerary", map[string]interface{}{
		"environment": appCfg.App.Environment,
		"provider":    appCfg.Generator.Provider,
		"store":       appCfg.Store.Driver,
	})
	return server.New(appCfg.Server, p, trips.NewService(store, appLog), appLog).Run(ctx)
}

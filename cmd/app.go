package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gaurav-prasanna/link2itinerary/config"
	"github.com/gaurav-prasanna/link2itinerary/core/clip"
	"github.com/gaurav-prasanna/link2itinerary/core/fetch"
	"github.com/gaurav-prasanna/link2itinerary/core/generate"
	"github.com/gaurav-prasanna/link2itinerary/logger"
	"github.com/gaurav-prasanna/link2itinerary/metrics"
	"github.com/gaurav-prasanna/link2itinerary/planner"
	"github.com/gaurav-prasanna/link2itinerary/trips"
)

func newFetcher(cfg config.FetcherConfig) *fetch.HTTPFetcher {
	return fetch.NewWithOptions(fetch.Options{
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
}

// newPlanner wires one planner for the process. The generator is built once
// and shared by every run.
func newPlanner(ctx context.Context, cfg *config.Config, log logger.Logger, rec metrics.Recorder) (*planner.Planner, error) {
	gen, err := generate.New(ctx, generate.Config{
		Provider:        cfg.Generator.Provider,
		APIKey:          cfg.Generator.APIKey,
		BaseURL:         cfg.Generator.BaseURL,
		Model:           cfg.Generator.Model,
		ReasoningEffort: cfg.Generator.ReasoningEffort,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing generator: %w", err)
	}
	if err := gen.Ready(); err != nil {
		log.Warn("generator is not configured; planning requests will fail", map[string]interface{}{
			"provider": cfg.Generator.Provider,
			"error":    err.Error(),
		})
	}

	return planner.New(planner.Options{
		Fetcher:         newFetcher(cfg.Fetcher),
		Clipper:         clip.New(cfg.Clipper.MaxChars),
		Generator:       gen,
		Logger:          log,
		Metrics:         rec,
		GenerateTimeout: cfg.Generator.Timeout,
	})
}

// openStore returns the trip store selected by cfg.Driver and a func that
// releases its connections.
func openStore(ctx context.Context, cfg config.StoreConfig) (trips.Store, func() error, error) {
	switch cfg.Driver {
	case "", "memory":
		return trips.NewMemoryStore(), func() error { return nil }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Address, err)
		}
		return trips.NewRedisStore(rdb), rdb.Close, nil

	case "postgres":
		db, err := trips.OpenPostgres(cfg.Postgres.DSN, cfg.Postgres.MaxConnections, cfg.Postgres.MaxIdle)
		if err != nil {
			return nil, nil, err
		}
		store := trips.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

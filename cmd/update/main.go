// Package main provides the one-shot dataset update tool.
//
// It downloads the airport feed, enriches eligible airports against the
// persisted dataset, and rewrites the per-country JSON files plus the global
// country index.
//
// Usage:
//
//	AIRPORTDB_API_KEY=... go run ./cmd/update
//	go run ./cmd/update --data-dir ./data --log-level debug
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/airatlasapp/airatlas-server/internal/config"
	"github.com/airatlasapp/airatlas-server/internal/enrich"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/provider/airportdb"
	"github.com/airatlasapp/airatlas-server/internal/provider/metar"
	"github.com/airatlasapp/airatlas-server/internal/service"
	"github.com/airatlasapp/airatlas-server/internal/source"
	"github.com/airatlasapp/airatlas-server/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	if cfg.Providers.AirportDBAPIKey == "" {
		log.Warn("AIRPORTDB_API_KEY not set, airport details enrichment disabled")
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	st := store.New(cfg.Data.Dir, log.Logger)
	feed := source.NewFeed(cfg.Source.FeedURL, log.Logger)
	names := source.NewCountryNames(cfg.Source.CountryNamesURL, log.Logger)

	engine := enrich.NewEngine(
		airportdb.New(airportdb.Options{
			APIKey:  cfg.Providers.AirportDBAPIKey,
			BaseURL: cfg.Providers.AirportDBBaseURL,
			Logger:  log.Logger,
		}),
		metar.New(metar.Options{
			BaseURL: cfg.Providers.MetarBaseURL,
			Logger:  log.Logger,
		}),
		log.Logger,
	)

	svc := service.NewUpdateService(feed, names, engine, st, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	log.Info("Update complete",
		"run_id", result.RunID,
		"countries", len(result.Countries),
	)
	return nil
}

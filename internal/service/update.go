// Package service orchestrates the update pipeline: download the source feed,
// run the enrichment engine per country, aggregate, and persist.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/airatlasapp/airatlas-server/internal/airport"
	"github.com/airatlasapp/airatlas-server/internal/dataset"
	"github.com/airatlasapp/airatlas-server/internal/enrich"
	"github.com/airatlasapp/airatlas-server/internal/id"
	"github.com/airatlasapp/airatlas-server/internal/source"
	"github.com/airatlasapp/airatlas-server/internal/store"
)

// FeedDownloader obtains the raw source rows.
type FeedDownloader interface {
	Download(ctx context.Context) ([]airport.Row, error)
}

// NamesFetcher obtains the country display-name mapping.
type NamesFetcher interface {
	Fetch(ctx context.Context) (source.Names, error)
}

// PersistedLoader seeds the reuse decisions with the previous run's records.
type PersistedLoader interface {
	LoadPersisted(code string) map[string]airport.Record
}

// RunResult is the outcome of one update pass.
type RunResult struct {
	RunID     string
	Countries []dataset.CountryDataset
	Index     []dataset.IndexEntry
	Stats     map[string]enrich.Stats
}

// UpdateService runs complete update passes. A pass is sequential: countries
// one at a time, airports within a country one at a time.
type UpdateService struct {
	feed   FeedDownloader
	names  NamesFetcher
	engine *enrich.Engine
	store  *store.Store
	logger *slog.Logger
}

// NewUpdateService creates an update service.
func NewUpdateService(feed FeedDownloader, names NamesFetcher, engine *enrich.Engine, st *store.Store, logger *slog.Logger) *UpdateService {
	return &UpdateService{
		feed:   feed,
		names:  names,
		engine: engine,
		store:  st,
		logger: logger,
	}
}

// Run executes one update pass. Only a source-feed failure or a write failure
// aborts the run; provider failures and a missing country-name mapping only
// degrade the output. Country files written before an abort stay on disk.
func (s *UpdateService) Run(ctx context.Context) (*RunResult, error) {
	runID, err := id.NewRunID()
	if err != nil {
		return nil, err
	}
	log := s.logger.With("run_id", runID)

	names, err := s.names.Fetch(ctx)
	if err != nil {
		log.Warn("could not load country names, falling back to codes", "error", err)
		names = nil
	}

	rows, err := s.feed.Download(ctx)
	if err != nil {
		return nil, fmt.Errorf("download source feed: %w", err)
	}

	result, err := s.process(ctx, rows, names, s.store, log)
	if err != nil {
		return nil, err
	}
	result.RunID = runID

	log.Info("update complete",
		"countries", len(result.Countries),
		"airports", len(rows),
	)
	return result, nil
}

// process is the core pipeline over an already-downloaded source table. It
// enriches, aggregates, and writes each country in first-encounter order,
// then the global index.
func (s *UpdateService) process(ctx context.Context, rows []airport.Row, names source.Names, loader PersistedLoader, log *slog.Logger) (*RunResult, error) {
	records := make([]airport.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, airport.Normalize(row))
	}

	codes, buckets := dataset.GroupByCountry(records)
	cache := enrich.Cache{}
	now := time.Now().UTC()

	result := &RunResult{
		Countries: make([]dataset.CountryDataset, 0, len(codes)),
		Stats:     make(map[string]enrich.Stats, len(codes)),
	}

	for _, code := range codes {
		persisted := loader.LoadPersisted(code)
		enriched, stats := s.engine.EnrichCountry(ctx, buckets[code], persisted, cache)

		ds := dataset.Build(code, names.DisplayName(code), enriched, now)
		if err := s.store.WriteCountry(ds); err != nil {
			return nil, err
		}

		result.Countries = append(result.Countries, ds)
		result.Stats[code] = stats

		log.Info("country processed",
			"country", code,
			"airports", ds.TotalAirports,
			"airportdb_fetched", stats.AirportDBFetched,
			"airportdb_skipped", stats.AirportDBSkipped,
			"metar_fetched", stats.MetarFetched,
			"metar_skipped", stats.MetarSkipped,
		)
	}

	result.Index = dataset.BuildIndex(result.Countries)
	if err := s.store.WriteIndex(result.Index); err != nil {
		return nil, err
	}
	return result, nil
}

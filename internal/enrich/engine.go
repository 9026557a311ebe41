package enrich

import (
	"context"
	"log/slog"

	"github.com/airatlasapp/airatlas-server/internal/airport"
)

// DetailsProvider fetches arbitrary enrichment fields for an airport ident.
// A nil or empty payload with a nil error means the provider had nothing.
type DetailsProvider interface {
	Details(ctx context.Context, ident string) (map[string]any, error)
}

// WeatherProvider reports whether live weather (METAR) data is published for
// an airport ident.
type WeatherProvider interface {
	MetarAvailable(ctx context.Context, ident string) (bool, error)
}

// Cache holds details-provider responses for the duration of one run, keyed by
// ident. It only avoids a second round-trip for an ident seen twice in the
// same run; it carries no reuse semantics of its own.
type Cache map[string]map[string]any

// Engine is the enrichment decision engine. Provider failures never propagate:
// a failed details fetch merges nothing and a failed weather probe resolves to
// false.
type Engine struct {
	details DetailsProvider
	weather WeatherProvider
	logger  *slog.Logger
}

// NewEngine creates an enrichment engine.
func NewEngine(details DetailsProvider, weather WeatherProvider, logger *slog.Logger) *Engine {
	return &Engine{
		details: details,
		weather: weather,
		logger:  logger,
	}
}

// EnrichCountry runs the per-airport reuse-or-refetch decisions for every
// record of one country, in source order. persisted seeds the reuse decisions
// and is read-only; cache spans the whole run and is shared across countries.
func (e *Engine) EnrichCountry(ctx context.Context, records []airport.Record, persisted map[string]airport.Record, cache Cache) ([]airport.Record, Stats) {
	var stats Stats
	out := make([]airport.Record, 0, len(records))
	for _, rec := range records {
		e.enrichOne(ctx, &rec, persisted, cache, &stats)
		out = append(out, rec)
	}
	return out, stats
}

func (e *Engine) enrichOne(ctx context.Context, rec *airport.Record, persisted map[string]airport.Record, cache Cache, stats *Stats) {
	if rec.Ident == "" {
		// No usable identifier: nothing to enrich, not even a weather default.
		return
	}

	prev, hasPrev := persisted[rec.Ident]

	if !Eligible(rec.Type, rec.ISOCountry) {
		// Both facets resolve without provider calls. Persisted presence is
		// trusted over eligibility, so inherited enrichment survives a rule
		// change between runs.
		if hasPrev {
			rec.MergePersistedEnrichment(&prev)
			stats.AirportDBSkipped++
		}
		if hasPrev && prev.MetarAvailable != nil {
			rec.SetMetarAvailable(*prev.MetarAvailable)
			stats.MetarSkipped++
		} else {
			rec.SetMetarAvailable(false)
		}
		return
	}

	e.resolveDetails(ctx, rec, &prev, hasPrev, cache, stats)
	e.resolveWeather(ctx, rec, &prev, hasPrev, stats)
}

// resolveDetails applies the details/runway facet. Reuse requires a persisted
// record with a non-empty runway list; runway data is effectively static, so
// it is only worth re-fetching when never successfully obtained.
func (e *Engine) resolveDetails(ctx context.Context, rec *airport.Record, prev *airport.Record, hasPrev bool, cache Cache, stats *Stats) {
	if hasPrev && prev.HasRunways() {
		rec.MergePersistedEnrichment(prev)
		stats.AirportDBSkipped++
		return
	}

	stats.AirportDBFetched++

	payload, ok := cache[rec.Ident]
	if !ok {
		var err error
		payload, err = e.details.Details(ctx, rec.Ident)
		if err != nil {
			e.logger.Debug("details fetch failed", "ident", rec.Ident, "error", err)
			return
		}
		if len(payload) > 0 && cache != nil {
			cache[rec.Ident] = payload
		}
	}
	if len(payload) > 0 {
		rec.MergeDetails(payload)
	}
}

// resolveWeather applies the weather facet. Presence of a persisted value,
// regardless of truthiness, governs reuse: availability is a volatile boolean
// worth re-trusting once known.
func (e *Engine) resolveWeather(ctx context.Context, rec *airport.Record, prev *airport.Record, hasPrev bool, stats *Stats) {
	if hasPrev && prev.MetarAvailable != nil {
		rec.SetMetarAvailable(*prev.MetarAvailable)
		stats.MetarSkipped++
		return
	}

	stats.MetarFetched++

	available, err := e.weather.MetarAvailable(ctx, rec.Ident)
	if err != nil {
		e.logger.Debug("metar probe failed", "ident", rec.Ident, "error", err)
		available = false
	}
	rec.SetMetarAvailable(available)
}

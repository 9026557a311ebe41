package providers

import (
	"github.com/samber/do/v2"

	"github.com/airatlasapp/airatlas-server/internal/config"
	"github.com/airatlasapp/airatlas-server/internal/enrich"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/provider/airportdb"
	"github.com/airatlasapp/airatlas-server/internal/provider/metar"
	"github.com/airatlasapp/airatlas-server/internal/service"
	"github.com/airatlasapp/airatlas-server/internal/source"
	"github.com/airatlasapp/airatlas-server/internal/store"
)

// ProvideFeed provides the airport source feed downloader.
func ProvideFeed(i do.Injector) (*source.Feed, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return source.NewFeed(cfg.Source.FeedURL, log.Logger), nil
}

// ProvideCountryNames provides the country name lookup fetcher.
func ProvideCountryNames(i do.Injector) (*source.CountryNames, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return source.NewCountryNames(cfg.Source.CountryNamesURL, log.Logger), nil
}

// ProvideAirportDBClient provides the airport details client.
func ProvideAirportDBClient(i do.Injector) (*airportdb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Providers.AirportDBAPIKey == "" {
		log.Warn("AIRPORTDB_API_KEY not set, airport details enrichment disabled")
	}

	return airportdb.New(airportdb.Options{
		APIKey:  cfg.Providers.AirportDBAPIKey,
		BaseURL: cfg.Providers.AirportDBBaseURL,
		Logger:  log.Logger,
	}), nil
}

// ProvideMetarClient provides the METAR availability client.
func ProvideMetarClient(i do.Injector) (*metar.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return metar.New(metar.Options{
		BaseURL: cfg.Providers.MetarBaseURL,
		Logger:  log.Logger,
	}), nil
}

// ProvideEngine provides the enrichment engine.
func ProvideEngine(i do.Injector) (*enrich.Engine, error) {
	details := do.MustInvoke[*airportdb.Client](i)
	weather := do.MustInvoke[*metar.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return enrich.NewEngine(details, weather, log.Logger), nil
}

// ProvideUpdateService provides the dataset update service.
func ProvideUpdateService(i do.Injector) (*service.UpdateService, error) {
	feed := do.MustInvoke[*source.Feed](i)
	names := do.MustInvoke[*source.CountryNames](i)
	engine := do.MustInvoke[*enrich.Engine](i)
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUpdateService(feed, names, engine, st, log.Logger), nil
}

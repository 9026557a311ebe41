// Package di provides dependency injection configuration for the AirAtlas server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/airatlasapp/airatlas-server/internal/config"
	"github.com/airatlasapp/airatlas-server/internal/di/providers"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Dataset storage
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Source feeds and enrichment providers
	do.Provide(injector, providers.ProvideFeed)
	do.Provide(injector, providers.ProvideCountryNames)
	do.Provide(injector, providers.ProvideAirportDBClient)
	do.Provide(injector, providers.ProvideMetarClient)
	do.Provide(injector, providers.ProvideEngine)
	do.Provide(injector, providers.ProvideUpdateService)

	// Server and workers
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideDatasetWatcher)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization in
// dependency order and starts the HTTP server and dataset watcher.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.UpdateService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.DatasetWatcherHandle](injector)

	return nil
}

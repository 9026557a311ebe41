package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/airatlasapp/airatlas-server/internal/api"
	"github.com/airatlasapp/airatlas-server/internal/config"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/service"
	"github.com/airatlasapp/airatlas-server/internal/store"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideAPIServer provides the HTTP handler with the dataset loaded.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)
	updater := do.MustInvoke[*service.UpdateService](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := api.NewServer(st, searchHandle.Index, updater, log.Logger)
	srv.SetAdminToken(cfg.Server.AdminToken)

	// A missing dataset is fine on first boot, an update run will create it.
	if err := srv.ReloadData(); err != nil {
		log.Warn("No dataset loaded yet", "error", err)
	}

	return srv, nil
}

// ProvideHTTPServer provides the HTTP server, started in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}

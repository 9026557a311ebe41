package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/airatlasapp/airatlas-server/internal/api"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/store"
	"github.com/airatlasapp/airatlas-server/internal/watcher"
)

// DatasetWatcherHandle wraps the dataset watcher with shutdown capability.
type DatasetWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *DatasetWatcherHandle) Shutdown() error {
	h.cancel()
	return h.Watcher.Close()
}

// ProvideDatasetWatcher watches the country index file and reloads the API
// caches when an update run replaces it, including runs by a separate
// updater process.
func ProvideDatasetWatcher(i do.Injector) (*DatasetWatcherHandle, error) {
	st := do.MustInvoke[*store.Store](i)
	srv := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	w, err := watcher.New(st.IndexFile(), log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx, func() {
		if err := srv.ReloadData(); err != nil {
			log.Error("Dataset reload failed", "error", err)
		}
	})

	log.Info("Dataset watcher started", "file", st.IndexFile())

	return &DatasetWatcherHandle{Watcher: w, cancel: cancel}, nil
}

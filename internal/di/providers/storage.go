package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/airatlasapp/airatlas-server/internal/config"
	"github.com/airatlasapp/airatlas-server/internal/logger"
	"github.com/airatlasapp/airatlas-server/internal/store"
)

// ProvideStore provides the dataset file store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	st := store.New(cfg.Data.Dir, log.Logger)
	log.Info("Dataset store ready", "dir", cfg.Data.Dir)

	return st, nil
}

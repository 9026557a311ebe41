// Package watcher notifies the API server when the on-disk dataset changes,
// so an updater run in another process is picked up without a restart.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of writes an update run produces into a
// single reload.
const debounceWindow = 2 * time.Second

// Watcher watches one file (via its parent directory, since the writer
// replaces it by rename) and invokes a callback after changes settle.
type Watcher struct {
	fs     *fsnotify.Watcher
	target string
	logger *slog.Logger
}

// New creates a watcher for the given file path.
func New(target string, logger *slog.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(target)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	return &Watcher{
		fs:     fs,
		target: target,
		logger: logger,
	}, nil
}

// Start blocks until ctx is done, invoking onChange after each settled burst
// of events touching the target file.
func (w *Watcher) Start(ctx context.Context, onChange func()) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.target) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("dataset change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			timerC = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)

		case <-timerC:
			timerC = nil
			onChange()
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnTargetChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "countries.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o644))

	w, err := New(target, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fired := make(chan struct{}, 1)
	go w.Start(ctx, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	// Simulate the updater's atomic replace.
	tmp := filepath.Join(dir, ".tmp.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`[{"code":"FR"}]`), 0o644))
	require.NoError(t, os.Rename(tmp, target))

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("watcher did not fire")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "countries.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o644))

	w, err := New(target, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go w.Start(ctx, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))

	select {
	case <-fired:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(3 * time.Second):
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "countries.json"),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

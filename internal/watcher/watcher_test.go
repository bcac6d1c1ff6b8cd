package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	var changes atomic.Int32
	w := NewWatcher(dir, func() { changes.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return changes.Load() > 0 }) {
		t.Error("no change reported for created file")
	}
}

func TestWatcher_SeesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	var changes atomic.Int32
	w := NewWatcher(dir, func() { changes.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return changes.Load() > 0 }) {
		t.Fatal("no change reported for new directory")
	}

	// A write inside the new directory must also be seen.
	before := changes.Load()
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "g.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, func() bool { return changes.Load() > before }) {
		t.Error("no change reported inside new subdirectory")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(t.TempDir(), nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

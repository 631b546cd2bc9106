package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolvePathCustom(t *testing.T) {
	if got := ResolvePath("/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("ResolvePath(custom) = %q", got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logview.yaml")
	if err := os.WriteFile(path, []byte("total_logs: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	go w.Run(ctx, func() { changed <- struct{}{} })

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("total_logs: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}

	cfg, err := LoadLogViewer(w.Path())
	if err != nil {
		t.Fatalf("LoadLogViewer() failed: %v", err)
	}
	if cfg.TotalLogs != 20 {
		t.Errorf("TotalLogs = %d, want 20", cfg.TotalLogs)
	}
}

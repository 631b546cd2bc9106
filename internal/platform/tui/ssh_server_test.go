package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSSHServerCreatesHostKeyDir(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_key")

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("unexpected address %q", srv.Addr())
	}
	if _, err := os.Stat(filepath.Dir(keyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
}

func TestSSHServerSetViewerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if got := srv.ViewerConfig().TotalLogs; got != cfg.Viewer.TotalLogs {
		t.Errorf("initial TotalLogs = %d, want %d", got, cfg.Viewer.TotalLogs)
	}

	next := cfg.Viewer
	next.TotalLogs = 500
	srv.SetViewerConfig(next)

	if got := srv.ViewerConfig().TotalLogs; got != 500 {
		t.Errorf("TotalLogs after update = %d, want 500", got)
	}
}

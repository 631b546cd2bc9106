package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ResolvePath returns the config file LoadLogViewer would read, or an empty
// string when only the embedded default applies.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := userConfigPath("logview.yaml"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	local := filepath.Join("configs", "logview.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

// Watcher reports changes to a single config file.
// The parent directory is watched so editors that replace the file on
// save are still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	logger *log.Logger
}

// NewWatcher starts watching path. A nil logger discards output.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", abs, err)
	}

	return &Watcher{fsw: fsw, path: abs, logger: logger}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run calls onChange after every write, create or rename of the file.
// It blocks until ctx is cancelled and closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("config changed", "path", w.path, "op", ev.Op.String())
			onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

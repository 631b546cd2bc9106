package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/logview/internal/config"
	"github.com/vovakirdan/logview/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the log viewer SSH server",
	Long: `Start an SSH server that serves the log viewer.

Each SSH connection gets its own viewer with its own background producer,
which is stopped when the connection closes.

When the viewer config comes from a file, the file is watched and edits
apply to new connections.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.logview/host_key

Examples:
  logview serve                           # Listen on :23234 with auto-generated key
  logview serve --ssh :2222               # Listen on port 2222
  logview serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	viewer, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Viewer:      viewer,
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "logview-ssh",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchConfig(ctx, server, logger)

	fmt.Printf("Starting logview SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// watchConfig reloads the viewer config into server whenever its file
// changes. Invalid edits are logged and ignored.
func watchConfig(ctx context.Context, server *tui.SSHServer, logger *log.Logger) {
	path := config.ResolvePath(flagConfig)
	if path == "" {
		return
	}

	w, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Warn("config reload disabled", "error", err)
		return
	}
	logger.Info("watching config", "path", w.Path())

	go w.Run(ctx, func() {
		cfg, err := loadConfig()
		if err != nil {
			logger.Warn("ignoring config change", "error", err)
			return
		}
		server.SetViewerConfig(cfg)
	})
}

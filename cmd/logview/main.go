// logview is a terminal log viewer that streams synthetic log records
// into a virtualized list.
//
// Usage:
//
//	logview view                 - Open the log viewer
//	logview serve                - Start SSH server serving the viewer
//	logview produce              - Print a batch of generated records
//	logview records <cmd>        - Manage the water balloon record bank
//
// Global flags:
//
//	--config <path> - Custom viewer config YAML
//	--total <n>     - Override TOTAL_LOGS
//	--batch <n>     - Override BATCH_SIZE
//	--db <path>     - Database path (default: ~/.logview/logview.db)
//	--store <name>  - Record bank backend: sqlite or pebble
//	--debug         - Write debug logs to logview-debug.log
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/logview/internal/config"
	"github.com/vovakirdan/logview/internal/storage"
)

const debugLogFile = "logview-debug.log"

var (
	// Global flags
	flagConfig string
	flagTotal  int
	flagBatch  int
	flagDBPath string
	flagStore  string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logview",
	Short: "logview - browse an endless stream of logs in your terminal",
	Long: `logview renders a very large, lazily generated log stream in a
fixed-size terminal list. Records are generated in batches on background
workers as you scroll; only the visible rows are ever rendered.

Available commands:
  view      - Open the log viewer
  serve     - Start SSH server for remote viewing
  produce   - Print generated records
  records   - Manage the record bank

Examples:
  logview view
  logview view --total 50000 --batch 250
  logview serve --ssh :2222
  logview produce --start 100 --count 5 --json
  logview records list`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom viewer config YAML")
	rootCmd.PersistentFlags().IntVar(&flagTotal, "total", 0, "Total number of log records (0 = from config)")
	rootCmd.PersistentFlags().IntVar(&flagBatch, "batch", 0, "Records per batch (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.logview/logview.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storage.BackendSQLite, "Record bank backend: sqlite or pebble")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to "+debugLogFile)

	// Add subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(produceCmd)
	rootCmd.AddCommand(recordsCmd)
}

// loadConfig resolves the viewer config: file, then environment, then flags.
func loadConfig() (config.LogViewerConfig, error) {
	cfg, err := config.LoadLogViewer(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if flagTotal > 0 {
		cfg.TotalLogs = flagTotal
	}
	if flagBatch > 0 {
		cfg.BatchSize = flagBatch
	}
	return cfg, cfg.Validate()
}

// newTUILogger returns a logger that never writes to the terminal the UI
// owns. With --debug it writes to a file; the returned closer must be called.
func newTUILogger() (*log.Logger, io.Closer, error) {
	if !flagDebug {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	f, err := tea.LogToFile(debugLogFile, "logview")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open debug log: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

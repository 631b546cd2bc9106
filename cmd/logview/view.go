package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/logview/internal/platform/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the log viewer",
	Long: `Open the virtualized log viewer in the terminal.

Controls:
  Up/Down/j/k   - Scroll one row
  PgUp/PgDn     - Scroll one page
  Home/End      - Jump to first/last record
  ?             - Toggle help
  Q/Esc/Ctrl+C  - Quit

Examples:
  logview view
  logview view --total 10000
  logview view --config ./my-logview.yaml --debug`,
	Args: cobra.NoArgs,
	Run:  runView,
}

func runView(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closer, err := newTUILogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(cfg, tui.RunOptions{
		Width:  width,
		Height: height,
		Logger: logger,
	})

	// Close debug log before potential exit
	closer.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/logview/internal/platform/tui"
	"github.com/vovakirdan/logview/internal/records"
	"github.com/vovakirdan/logview/internal/storage"
)

var (
	flagScore        int
	flagTargetsHit   int
	flagTotalTargets int
	flagDuration     int
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the water balloon record bank",
	Long: `The record bank stores finished water balloon games as a JSON list
under a single key of the database. The database is SQLite by default;
--store pebble keeps it in a Pebble directory instead.

Examples:
  logview records list
  logview records add --score 5 --duration 42
  logview records show
  logview records clear
  logview records list --store pebble --db ~/.logview/bank`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored records and stats",
	Args:  cobra.NoArgs,
	Run:   runRecordsList,
}

var recordsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a record",
	Args:  cobra.NoArgs,
	Run:   runRecordsAdd,
}

var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all records",
	Args:  cobra.NoArgs,
	Run:   runRecordsClear,
}

var recordsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Browse records interactively",
	Args:  cobra.NoArgs,
	Run:   runRecordsShow,
}

func init() {
	recordsAddCmd.Flags().IntVar(&flagScore, "score", 0, "Score")
	recordsAddCmd.Flags().IntVar(&flagTargetsHit, "targets-hit", 5, "Targets hit")
	recordsAddCmd.Flags().IntVar(&flagTotalTargets, "total-targets", 5, "Total targets")
	recordsAddCmd.Flags().IntVar(&flagDuration, "duration", 0, "Game duration in seconds")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsAddCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	recordsCmd.AddCommand(recordsShowCmd)
}

// openBank opens the configured backend or exits.
func openBank() (*records.Bank, storage.KV) {
	store, err := storage.OpenKV(flagStore, flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return records.NewBank(store), store
}

func runRecordsList(_ *cobra.Command, _ []string) {
	bank, store := openBank()
	defer store.Close()

	list, err := bank.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	fmt.Println("Memory Bank")
	fmt.Println()

	if len(list) == 0 {
		fmt.Println("No records yet.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "#", "Score", "Targets", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "-", "-----", "-------", "----", "----")

	for i, r := range list {
		fmt.Printf("  %-4d  %-6d  %-8s  %-6s  %s\n",
			i+1, r.Score, fmt.Sprintf("%d/%d", r.TargetsHit, r.TotalTargets),
			records.FormatDuration(r.Duration), r.Date)
	}

	stats := records.Summarize(list)
	fmt.Println()
	fmt.Printf("Best Score: %d\n", stats.BestScore)
	fmt.Printf("Best Time: %s\n", records.FormatDuration(stats.BestTime))
	fmt.Printf("Total Games: %d\n", stats.TotalGames)
}

func runRecordsAdd(_ *cobra.Command, _ []string) {
	bank, store := openBank()
	defer store.Close()

	rec, err := bank.Append(records.GameRecord{
		Score:        flagScore,
		TargetsHit:   flagTargetsHit,
		TotalTargets: flagTotalTargets,
		Duration:     flagDuration,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving record: %v\n", err)
		return
	}
	fmt.Printf("Saved record %s (score %d)\n", rec.ID, rec.Score)
}

func runRecordsClear(_ *cobra.Command, _ []string) {
	bank, store := openBank()
	defer store.Close()

	if err := bank.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing records: %v\n", err)
		return
	}
	fmt.Println("All records cleared.")
}

func runRecordsShow(_ *cobra.Command, _ []string) {
	bank, store := openBank()
	defer store.Close()

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if err := tui.RunRecordBank(bank, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logview/internal/logs"
	"github.com/vovakirdan/logview/internal/producer"
)

var (
	flagStart int
	flagCount int
	flagJSON  bool
)

var produceCmd = &cobra.Command{
	Use:   "produce",
	Short: "Print generated log records",
	Long: `Run the producer once and print the records for a range of indices.

Level, source and message depend only on the index. Timestamps are taken
relative to the current time, so they change between runs.

Examples:
  logview produce --start 0 --count 10
  logview produce --start 5000 --count 3 --json`,
	Args: cobra.NoArgs,
	Run:  runProduce,
}

func init() {
	produceCmd.Flags().IntVar(&flagStart, "start", 0, "First record index")
	produceCmd.Flags().IntVar(&flagCount, "count", 10, "Number of records")
	produceCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the producer response as JSON")
}

func runProduce(_ *cobra.Command, _ []string) {
	records, err := logs.Produce(flagStart, flagCount, time.Now())

	if flagJSON {
		resp := producer.Response{Logs: records, StartIndex: flagStart}
		if err != nil {
			resp = producer.Response{StartIndex: flagStart, Err: err.Error()}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(resp); encErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", encErr)
			os.Exit(1)
		}
		if err != nil {
			os.Exit(1)
		}
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, r := range records {
		if len(r.ID) > maxIDLen {
			maxIDLen = len(r.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-12s  %-5s  %-8s  %s\n", maxIDLen, "ID", "Time", "Level", "Source", "Message")
	fmt.Printf("  %-*s  %-12s  %-5s  %-8s  %s\n", maxIDLen, "--", "----", "-----", "------", "-------")

	for _, r := range records {
		fmt.Printf("  %-*s  %-12s  %-5s  %-8s  %s\n",
			maxIDLen, r.ID, r.Time().Format("15:04:05.000"), r.Level, r.Source, r.Message)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/loadtest"
	"github.com/papadavis47/mountains/internal/ui"
)

var benchCmd = &cobra.Command{
	Use:    "bench",
	Hidden: true,
	Short:  "Measure store latency against a synthetic journal",
	Long: `Populate a throwaway store with synthetic training history and measure
full-journal load latency under concurrent readers, sequential save
latency, and read consistency against a live writer.

Examples:
  mtn bench
  mtn bench --days 3650 --readers 8
  mtn bench --verify 10s`,
	Run: func(cmd *cobra.Command, args []string) {
		days, _ := cmd.Flags().GetInt("days")
		readers, _ := cmd.Flags().GetInt("readers")
		loads, _ := cmd.Flags().GetInt("loads")
		saves, _ := cmd.Flags().GetInt("saves")
		verify, _ := cmd.Flags().GetDuration("verify")

		if days <= 0 {
			fmt.Fprintf(os.Stderr, "Error: --days must be positive\n")
			os.Exit(1)
		}
		if readers <= 0 {
			fmt.Fprintf(os.Stderr, "Error: --readers must be positive\n")
			os.Exit(1)
		}

		dir, err := os.MkdirTemp("", "mtn-bench-*")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer os.RemoveAll(dir)

		fmt.Printf("%s Populating %d days of synthetic history...\n", ui.RenderAccent("🔄"), days)
		start := time.Now()
		ts, err := loadtest.CreateTestStore(dir, days, 0.6)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error populating store: %v\n", err)
			os.Exit(1)
		}
		defer ts.Close()
		fmt.Printf("%s Populated in %v\n\n", ui.RenderPass("✓"), time.Since(start).Round(time.Millisecond))

		fmt.Printf("Full-journal loads: %d readers x %d loads\n", readers, loads)
		loadStats, err := ts.RunConcurrentLoads(readers, loads)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		loadStats.PrintStats()
		fmt.Println()

		fmt.Printf("Sequential day saves: %d\n", saves)
		saveStats, err := ts.RunSaveSeries(saves)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		saveStats.PrintStats()
		fmt.Println()

		if verify > 0 {
			fmt.Printf("Verifying reads against a live writer for %v...\n", verify)
			if err := ts.VerifyConcurrentAccess(readers, verify); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s No torn or misordered reads\n", ui.RenderPass("✓"))
		}
	},
}

func init() {
	benchCmd.Flags().Int("days", 1825, "Days of synthetic history to populate")
	benchCmd.Flags().Int("readers", 4, "Concurrent readers")
	benchCmd.Flags().Int("loads", 25, "Full-journal loads per reader")
	benchCmd.Flags().Int("saves", 200, "Sequential day saves to time")
	benchCmd.Flags().Duration("verify", 0, "Run the live-writer consistency check for this long")
	rootCmd.AddCommand(benchCmd)
}

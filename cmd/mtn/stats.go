package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/stats"
	"github.com/papadavis47/mountains/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	GroupID: "log",
	Short:   "Show elevation and mileage summaries",
	Run: func(cmd *cobra.Command, args []string) {
		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		now := journal.Today()

		fmt.Printf("\n%s Training Stats\n\n", ui.RenderAccent("⛰"))
		fmt.Printf("Days logged: %d\n", j.Len())
		fmt.Printf("1000+ ft days in %s: %d\n",
			now.Format("January"), stats.BigVertDays(j.Days, now))
		fmt.Printf("Elevation gain for %s: %d ft\n",
			now.Format("2006"), stats.YearElevation(j.Days, now))
		fmt.Printf("Miles for %s: %.1f\n", now.Format("2006"), stats.YearMiles(j.Days, now))
		fmt.Printf("Miles for %s: %.1f\n", now.Format("January"), stats.MonthMiles(j.Days, now))
		fmt.Println()
		fmt.Println(ui.RenderPass(stats.StreakMessage(j.Days)))
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

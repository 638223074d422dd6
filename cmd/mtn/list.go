package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: "log",
	Short:   "List logged days, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		if j.Len() == 0 {
			fmt.Println("No training logs yet.")
			return
		}

		days := j.Days
		if limit > 0 && limit < len(days) {
			days = days[:limit]
		}
		for _, rec := range days {
			fmt.Printf("%s  %s\n", rec.Date.Format("January 02, 2006"), summarize(rec))
		}
		if len(days) < j.Len() {
			fmt.Println(ui.RenderFaint(fmt.Sprintf("... and %d more", j.Len()-len(days))))
		}
	},
}

// summarize condenses a day to one faint line for the list view.
func summarize(rec *journal.DayRecord) string {
	var parts []string
	if rec.Miles != nil {
		parts = append(parts, fmt.Sprintf("%.1f mi", *rec.Miles))
	}
	if rec.Elevation != nil {
		parts = append(parts, fmt.Sprintf("%d ft", *rec.Elevation))
	}
	if n := len(rec.Food); n > 0 {
		parts = append(parts, fmt.Sprintf("%d food", n))
	}
	if n := len(rec.Sokay); n > 0 {
		parts = append(parts, fmt.Sprintf("%d sokay", n))
	}
	if len(parts) == 0 {
		return ""
	}
	return ui.RenderFaint(strings.Join(parts, ", "))
}

func init() {
	listCmd.Flags().IntP("limit", "n", 0, "Show at most this many days (0 = all)")
	rootCmd.AddCommand(listCmd)
}

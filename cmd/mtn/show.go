package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/ui"
)

var showCmd = &cobra.Command{
	Use:     "show [date]",
	GroupID: "log",
	Short:   "Print one day's log",
	Long: `Print the full log for a day: measurements, running, food, sokay,
strength & mobility, and notes.

The date accepts ISO form or natural language and defaults to today:

  mtn show
  mtn show 2024-03-15
  mtn show yesterday
  mtn show "last monday"`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := dateArg(args)

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		rec := j.Day(date)
		if rec == nil {
			fmt.Printf("No log for %s\n", date.Format("January 02, 2006"))
			return
		}
		fmt.Print(ui.RenderDay(rec))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/ui"
)

var setCmd = &cobra.Command{
	Use:     "set",
	GroupID: "log",
	Short:   "Set a day's measurement or running fields",
	Long: `Set one scalar field on a day's log. An empty value clears the field:

  mtn set weight 180.5
  mtn set waist 34
  mtn set miles 6.2 --date yesterday
  mtn set elevation 1850 --date 2024-03-15
  mtn set weight ""`,
}

var setWeightCmd = &cobra.Command{
	Use:   "weight <lbs>",
	Short: "Set body weight in pounds",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSetFloat(cmd, args[0], "weight", func(rec *journal.DayRecord, v *float64) {
			rec.Weight = v
		})
	},
}

var setWaistCmd = &cobra.Command{
	Use:   "waist <inches>",
	Short: "Set waist size in inches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSetFloat(cmd, args[0], "waist", func(rec *journal.DayRecord, v *float64) {
			rec.Waist = v
		})
	},
}

var setMilesCmd = &cobra.Command{
	Use:   "miles <mi>",
	Short: "Set miles covered",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSetFloat(cmd, args[0], "miles", func(rec *journal.DayRecord, v *float64) {
			rec.Miles = v
		})
	},
}

var setElevationCmd = &cobra.Command{
	Use:   "elevation <feet>",
	Short: "Set elevation gain in feet",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := dateFlag(cmd)

		var value *int64
		if args[0] != "" {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: elevation must be a whole number of feet: %v\n", err)
				os.Exit(1)
			}
			value = &v
		}

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		rec := j.EnsureDay(date)
		rec.Elevation = value
		env.saveDay(rec)

		reportSet("elevation", date, value != nil)
	},
}

// runSetFloat is the shared body of the three float-valued set commands.
func runSetFloat(cmd *cobra.Command, raw, field string, assign func(*journal.DayRecord, *float64)) {
	date := dateFlag(cmd)

	var value *float64
	if raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s must be a number: %v\n", field, err)
			os.Exit(1)
		}
		value = &v
	}

	env := mustEnv(cmd)
	defer env.close()

	j := env.loadJournal()
	rec := j.EnsureDay(date)
	assign(rec, value)
	env.saveDay(rec)

	reportSet(field, date, value != nil)
}

func reportSet(field string, date time.Time, set bool) {
	verb := "Cleared"
	if set {
		verb = "Set"
	}
	fmt.Printf("%s %s %s for %s\n", ui.RenderPass("✓"), verb, field, journal.FormatDate(date))
}

func init() {
	for _, c := range []*cobra.Command{setWeightCmd, setWaistCmd, setMilesCmd, setElevationCmd} {
		addDateFlag(c)
		setCmd.AddCommand(c)
	}
	rootCmd.AddCommand(setCmd)
}

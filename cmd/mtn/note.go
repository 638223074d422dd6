package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/journal"
)

var noteCmd = &cobra.Command{
	Use:     "note [text]...",
	GroupID: "log",
	Short:   "Set a day's notes",
	Long: `Replace the day's notes with the given text. With no text the notes
are cleared:

  mtn note long climb up the ridge, legs felt great
  mtn note --date yesterday "easy recovery day"
  mtn note --date 2024-03-15`,
	Run: func(cmd *cobra.Command, args []string) {
		runSetText(cmd, args, "notes", func(rec *journal.DayRecord, v *string) {
			rec.Notes = v
		})
	},
}

var trainingCmd = &cobra.Command{
	Use:     "training [text]...",
	GroupID: "log",
	Short:   "Set a day's strength & mobility notes",
	Long: `Replace the day's strength & mobility text. With no text the field
is cleared:

  mtn training pullups 3x8, pushups 3x20
  mtn training --date yesterday "hip mobility, 20 min"`,
	Run: func(cmd *cobra.Command, args []string) {
		runSetText(cmd, args, "strength & mobility", func(rec *journal.DayRecord, v *string) {
			rec.Strength = v
		})
	},
}

// runSetText is the shared body of the two free-text commands.
func runSetText(cmd *cobra.Command, args []string, field string, assign func(*journal.DayRecord, *string)) {
	date := dateFlag(cmd)

	var value *string
	if text := strings.TrimSpace(strings.Join(args, " ")); text != "" {
		value = &text
	}

	env := mustEnv(cmd)
	defer env.close()

	j := env.loadJournal()
	rec := j.EnsureDay(date)
	assign(rec, value)
	env.saveDay(rec)

	reportSet(field, date, value != nil)
}

func init() {
	addDateFlag(noteCmd)
	addDateFlag(trainingCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(trainingCmd)
}

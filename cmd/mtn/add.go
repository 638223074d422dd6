package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/ui"
)

var addCmd = &cobra.Command{
	Use:     "add",
	GroupID: "log",
	Short:   "Append a food or sokay entry to a day",
}

var addFoodCmd = &cobra.Command{
	Use:   "food <name>...",
	Short: "Append a food entry",
	Long: `Append an entry to the day's food log. Multiple words become one
entry, so quoting is optional:

  mtn add food oatmeal with berries
  mtn add food "post run burrito" --date yesterday`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := dateFlag(cmd)
		name := strings.Join(args, " ")

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		rec := j.EnsureDay(date)
		rec.AddFood(name)
		env.saveDay(rec)

		fmt.Printf("%s Added %q to %s (%d food entries)\n",
			ui.RenderPass("✓"), name, journal.FormatDate(date), len(rec.Food))
	},
}

var addSokayCmd = &cobra.Command{
	Use:   "sokay <entry>...",
	Short: "Append a sokay (indulgence) entry",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := dateFlag(cmd)
		entry := strings.Join(args, " ")

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		rec := j.EnsureDay(date)
		rec.AddSokay(entry)
		env.saveDay(rec)

		fmt.Printf("%s Logged sokay %q for %s\n",
			ui.RenderPass("✓"), entry, journal.FormatDate(date))
	},
}

func init() {
	addDateFlag(addFoodCmd)
	addDateFlag(addSokayCmd)
	addCmd.AddCommand(addFoodCmd)
	addCmd.AddCommand(addSokayCmd)
	rootCmd.AddCommand(addCmd)
}

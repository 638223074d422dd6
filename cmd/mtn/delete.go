package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [date]",
	GroupID: "log",
	Short:   "Delete an entire day's log",
	Long: `Delete a day's log: measurements, running, every food and sokay
entry, training notes, and daily notes, plus the day's markdown file.
This cannot be undone, so a prompt asks for confirmation unless --yes
is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := dateArg(args)
		yes, _ := cmd.Flags().GetBool("yes")

		env := mustEnv(cmd)
		defer env.close()

		j := env.loadJournal()
		rec := j.Day(date)
		if rec == nil {
			fmt.Printf("No log for %s\n", date.Format("January 02, 2006"))
			return
		}

		if !yes {
			var confirmed bool
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("Delete the entire log for %s?", date.Format("January 02, 2006"))).
				Description(fmt.Sprintf("%d food entries, %d sokay entries, and all measurements and notes will be removed.",
					len(rec.Food), len(rec.Sokay))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed)
			if err := prompt.Run(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !confirmed {
				fmt.Println("Cancelled.")
				return
			}
		}

		if err := env.store.DeleteDay(date); err != nil {
			env.fail("Error deleting %s: %v\n", date.Format("2006-01-02"), err)
		}
		j.Remove(date)
		if err := env.mirror.DeleteDay(date); err != nil {
			env.logger.Printf("markdown delete for %s failed: %v", date.Format("2006-01-02"), err)
		}

		fmt.Printf("%s Deleted log for %s\n", ui.RenderPass("✓"), date.Format("January 02, 2006"))
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

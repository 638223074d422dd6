package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/export"
	"github.com/papadavis47/mountains/internal/ui"
)

var importCmd = &cobra.Command{
	Use:     "import <file.jsonl>",
	GroupID: "data",
	Short:   "Import day records from a JSONL dump",
	Long: `Import day records from a JSONL dump, such as one written by
'mtn export' or the automatic pre-replica backup. Each imported day
replaces any existing log for that date in full.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", args[0], err)
			os.Exit(1)
		}
		defer f.Close()

		recs, err := export.ReadJSONL(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}
		if len(recs) == 0 {
			fmt.Println("Nothing to import.")
			return
		}

		env := mustEnv(cmd)
		defer env.close()

		// The normal save path, day by day, so imports behave exactly like
		// edits: full-replace children, mirror refresh, opportunistic sync.
		for _, rec := range recs {
			env.saveDay(rec)
		}

		fmt.Printf("%s Imported %d day(s) from %s\n", ui.RenderPass("✓"), len(recs), args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

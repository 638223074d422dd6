package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/export"
	"github.com/papadavis47/mountains/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	GroupID: "data",
	Short:   "Dump the journal as JSONL, YAML, or markdown",
	Long: `Dump every day record. JSONL and YAML go to stdout (or --output);
markdown regenerates the per-day mirror files in the data directory.

  mtn export > journal.jsonl
  mtn export --format yaml --output journal.yaml
  mtn export --format md`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		env := mustEnv(cmd)
		defer env.close()

		recs, err := env.store.LoadAll()
		if err != nil {
			env.fail("Error loading journal: %v\n", err)
		}

		if format == "md" {
			if err := env.mirror.RewriteAll(recs); err != nil {
				env.fail("Error: %v\n", err)
			}
			fmt.Printf("%s Rewrote %d markdown file(s) in %s\n",
				ui.RenderPass("✓"), len(recs), env.cfg.DataDir)
			return
		}

		var out io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				env.fail("Error creating %s: %v\n", outPath, err)
			}
			defer f.Close()
			out = f
		}

		switch format {
		case "jsonl":
			err = export.WriteJSONL(out, recs)
		case "yaml":
			err = export.WriteYAML(out, recs)
		default:
			env.fail("Error: unknown format %q (want jsonl, yaml, or md)\n", format)
		}
		if err != nil {
			env.fail("Error: %v\n", err)
		}

		if outPath != "" {
			fmt.Printf("%s Exported %d day(s) to %s\n", ui.RenderPass("✓"), len(recs), outPath)
		}
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "jsonl", "Output format: jsonl, yaml, or md")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

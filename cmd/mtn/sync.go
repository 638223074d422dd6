package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/store"
	"github.com/papadavis47/mountains/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	GroupID: "data",
	Short:   "Connect to Turso Cloud and push local changes",
	Long: `Upgrade the local database to an embedded replica of the configured
Turso database and push local changes to it.

Needs TURSO_DATABASE_URL and TURSO_AUTH_TOKEN in the environment or a
.env file. The first upgrade of a local-only database resets the file
(a JSONL backup is written to the data directory first); after that,
sync is incremental.

With --status the command only reports the replica state and connects
to nothing.`,
	Run: func(cmd *cobra.Command, args []string) {
		statusOnly, _ := cmd.Flags().GetBool("status")

		env := mustEnv(cmd)
		defer env.close()

		if statusOnly {
			printSyncStatus(env)
			return
		}

		if !env.cfg.CloudConfigured() {
			env.fail("Error: TURSO_DATABASE_URL and TURSO_AUTH_TOKEN are not set\n")
		}

		// Loaded before the upgrade on purpose: a first upgrade resets the
		// on-disk file, and these rows are what the backup writes out.
		j := env.loadJournal()

		fmt.Printf("%s Connecting to Turso Cloud...\n", ui.RenderAccent("🔄"))
		if err := env.store.UpgradeToReplica(env.cfg.TursoURL, env.cfg.TursoToken); err != nil {
			env.fail("Error: %v\n", err)
		}

		if err := env.store.Sync(); err != nil {
			env.fail("Error: sync failed: %v\n", err)
		}

		fmt.Printf("%s Synced %d day(s) with Turso Cloud\n", ui.RenderPass("✓"), j.Len())
	},
}

// printSyncStatus reports the on-disk replica state without connecting.
func printSyncStatus(env *appEnv) {
	fmt.Printf("\n%s Sync Status\n\n", ui.RenderAccent("📊"))
	fmt.Printf("Database: %s\n", env.store.Path())

	if info, err := os.Stat(env.store.Path()); err == nil {
		fmt.Printf("Size: %s\n", formatSize(info.Size()))
	}

	mode := "local-only"
	if env.store.IsReplica() {
		mode = "embedded replica (" + env.store.InfoPath() + ")"
	}
	fmt.Printf("Mode: %s\n", mode)

	cloud := "not configured"
	if env.cfg.CloudConfigured() {
		cloud = env.cfg.TursoURL
	}
	fmt.Printf("Remote: %s\n", cloud)

	st := env.store.Status()
	fmt.Printf("State: %s\n", st.State)
	if st.State == store.StateError {
		fmt.Printf("Last error: %s\n", st.Message)
	}

	if recs, err := env.store.LoadAll(); err == nil {
		fmt.Printf("Days: %d\n", len(recs))
	}
	fmt.Println()
}

func formatSize(size int64) string {
	switch {
	case size > 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	case size > 1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

func init() {
	syncCmd.Flags().Bool("status", false, "Report replica state without connecting")
	rootCmd.AddCommand(syncCmd)
}

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/logging"
	"github.com/papadavis47/mountains/internal/stats"
	"github.com/papadavis47/mountains/internal/store"
	"github.com/papadavis47/mountains/internal/tui"
	"github.com/papadavis47/mountains/internal/ui"
	"github.com/papadavis47/mountains/internal/writer"
)

// runApp is the default command: the interactive journal on a terminal, a
// plain summary when stdout is piped somewhere.
func runApp(cmd *cobra.Command) {
	env := mustEnv(cmd)
	defer env.close()

	j := env.loadJournal()

	// The upgrade runs in the background so the first frame never waits on
	// the network. The journal is already in memory, which matters: a first
	// upgrade resets the on-disk file.
	if env.cfg.CloudConfigured() {
		go func() {
			if err := env.store.UpgradeToReplica(env.cfg.TursoURL, env.cfg.TursoToken); err != nil {
				env.logger.Printf("replica upgrade failed: %v", err)
			}
		}()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		printSummary(j)
		return
	}

	w, err := writer.NewWithConfig(env.store, env.mirror, &writer.Config{
		Logger: logging.New(env.sink, "[writer] "),
	})
	if err != nil {
		env.fail("Error: %v\n", err)
	}
	if err := w.Start(); err != nil {
		env.fail("Error: %v\n", err)
	}

	m := tui.New(tui.Options{
		Journal:   j,
		Queue:     w,
		Backend:   env.store,
		Logger:    env.logger,
		SyncEvery: env.cfg.SyncInterval,
	})
	runErr := tui.Run(m)

	// Everything still queued lands before the final push.
	w.Stop()

	if syncErr := env.store.Sync(); syncErr == nil {
		fmt.Println(ui.RenderPass("✓ Synced to Turso Cloud"))
	} else if !errors.Is(syncErr, store.ErrNotConnected) {
		env.logger.Printf("final sync failed: %v", syncErr)
		fmt.Println(ui.RenderWarn("⚠️ Final sync failed; local data is safe"))
	}
	// Brief pause so the line above is readable before the shell prompt.
	time.Sleep(750 * time.Millisecond)

	if runErr != nil {
		env.fail("Error: %v\n", runErr)
	}
}

// printSummary is the non-TTY rendition of the startup screen.
func printSummary(j *journal.Journal) {
	now := journal.Today()
	fmt.Printf("Mountains training log: %d day(s) recorded\n", j.Len())
	fmt.Printf("%d days of 1000+ feet vert in %s\n",
		stats.BigVertDays(j.Days, now), now.Format("January"))
	fmt.Printf("%d feet of gain for %s\n",
		stats.YearElevation(j.Days, now), now.Format("2006"))
	fmt.Println(stats.YearMilesMessage(j.Days, now))
	fmt.Println(stats.MonthMilesMessage(j.Days, now))
	fmt.Println(stats.StreakMessage(j.Days))
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains/internal/config"
	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/logging"
	"github.com/papadavis47/mountains/internal/markdown"
	"github.com/papadavis47/mountains/internal/store"
)

// version is overridden by -ldflags on release builds.
var version = "0.4.0"

var rootCmd = &cobra.Command{
	Use:   "mtn",
	Short: "A trail running training log",
	Long: `Mountains is a daily training log for trail runners: weight and waist
measurements, miles and elevation gain, food, sokay indulgences, strength
work, and notes, stored locally with optional Turso cloud sync.

Run with no arguments to open the interactive log. Everything the
interactive screens can do is also reachable from scripts through the
subcommands below.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		runApp(cmd)
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "log", Title: "Logging Commands:"},
		&cobra.Group{ID: "data", Title: "Data Commands:"},
	)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Echo logs to stderr")
}

// appEnv is the bootstrap every command shares: configuration, the log
// sink, and an exclusive handle on the store.
type appEnv struct {
	cfg    *config.Config
	sink   io.Writer
	logger *log.Logger
	store  *store.Store
	mirror *markdown.Mirror

	sinkCloser io.Closer
}

// mustEnv loads configuration and opens the store, exiting with a message
// when either fails.
func mustEnv(cmd *cobra.Command) *appEnv {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
	if err := cfg.WriteStarterFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write starter config: %v\n", err)
	}

	sink, sinkCloser := logging.Sink(cfg.DataDir, cfg.Verbose)
	logger := logging.New(sink, "[mtn] ")

	if previous, err := cfg.VersionStamp(version); err != nil {
		logger.Printf("version stamp failed: %v", err)
	} else if config.IsUpgrade(previous, version) {
		logger.Printf("upgraded from %s to %s", previous, version)
	}

	s, err := store.Open(store.Config{
		Dir:                 cfg.DataDir,
		Logger:              logging.New(sink, "[store] "),
		ReplicaSyncInterval: cfg.ReplicaSyncInterval,
	})
	if err != nil {
		if errors.Is(err, store.ErrLocked) {
			fmt.Fprintf(os.Stderr, "Error: another mountains process is using %s\n", cfg.DataDir)
		} else {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		}
		sinkCloser.Close()
		os.Exit(1)
	}

	return &appEnv{
		cfg:        cfg,
		sink:       sink,
		logger:     logger,
		store:      s,
		mirror:     markdown.New(cfg.DataDir, logging.New(sink, "[mirror] ")),
		sinkCloser: sinkCloser,
	}
}

func (e *appEnv) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Printf("store close failed: %v", err)
	}
	e.sinkCloser.Close()
}

// fail prints the error, releases the environment, and exits.
func (e *appEnv) fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	e.close()
	os.Exit(1)
}

// loadJournal reads the full journal, exiting on failure.
func (e *appEnv) loadJournal() *journal.Journal {
	recs, err := e.store.LoadAll()
	if err != nil {
		e.fail("Error loading journal: %v\n", err)
	}
	return journal.NewJournal(recs)
}

// saveDay persists the record and refreshes its markdown mirror. Mirror
// failures are logged; the database write is what counts.
func (e *appEnv) saveDay(rec *journal.DayRecord) {
	if err := e.store.SaveDay(rec); err != nil {
		e.fail("Error saving %s: %v\n", journal.FormatDate(rec.Date), err)
	}
	if err := e.mirror.WriteDay(rec); err != nil {
		e.logger.Printf("markdown mirror for %s failed: %v", journal.FormatDate(rec.Date), err)
	}
}

// dateFlag resolves the shared --date flag, exiting on an unparseable
// value.
func dateFlag(cmd *cobra.Command) time.Time {
	raw, _ := cmd.Flags().GetString("date")
	date, err := journal.ParseHuman(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return date
}

// dateArg resolves an optional positional date argument, defaulting to
// today.
func dateArg(args []string) time.Time {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	}
	date, err := journal.ParseHuman(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return date
}

// addDateFlag attaches the shared --date flag to a mutating command.
func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("date", "d", "", "Day to modify (ISO or natural language, default today)")
}

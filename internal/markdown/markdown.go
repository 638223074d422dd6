// Package markdown mirrors day records to human-readable files, one per
// day, alongside the database. The files are a convenience export: the
// database is the source of truth and mirror failures are never fatal.
package markdown

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
)

const (
	filePrefix = "mtslog-"
	fileLayout = "01.02.2006"
	titleLayout = "January 02, 2006"
)

// Mirror writes markdown snapshots of day records into a directory.
type Mirror struct {
	dir    string
	logger *log.Logger
}

// New creates a mirror rooted at dir. The directory is created on first
// write if needed.
func New(dir string, logger *log.Logger) *Mirror {
	if logger == nil {
		logger = log.New(os.Stderr, "[mirror] ", log.LstdFlags)
	}
	return &Mirror{dir: dir, logger: logger}
}

// Path returns the markdown file path for a date, e.g. mtslog-03.15.2024.md.
func (m *Mirror) Path(date time.Time) string {
	return filepath.Join(m.dir, filePrefix+date.Format(fileLayout)+".md")
}

// WriteDay renders the record and replaces its markdown file.
func (m *Mirror) WriteDay(rec *journal.DayRecord) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create mirror directory: %w", err)
	}
	path := m.Path(rec.Date)
	if err := os.WriteFile(path, []byte(Render(rec)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DeleteDay removes the date's markdown file if it exists.
func (m *Mirror) DeleteDay(date time.Time) error {
	path := m.Path(date)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// RewriteAll regenerates every record's file. Individual failures are
// logged and skipped; the error reports only how many files failed.
func (m *Mirror) RewriteAll(recs []*journal.DayRecord) error {
	failed := 0
	for _, rec := range recs {
		if err := m.WriteDay(rec); err != nil {
			m.logger.Printf("rewrite failed: %v", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to rewrite %d of %d files", failed, len(recs))
	}
	return nil
}

// Render produces the markdown document for one day. Sections appear only
// when they have data, in a fixed order, so the files diff cleanly.
func Render(rec *journal.DayRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Mountains Training Log - %s\n\n", rec.Date.Format(titleLayout))

	if rec.Weight != nil || rec.Waist != nil {
		b.WriteString("## Measurements\n")
		if rec.Weight != nil {
			fmt.Fprintf(&b, "- **Weight:** %s lbs\n", trimFloat(*rec.Weight))
		}
		if rec.Waist != nil {
			fmt.Fprintf(&b, "- **Waist:** %s inches\n", trimFloat(*rec.Waist))
		}
		b.WriteString("\n")
	}

	if len(rec.Food) > 0 {
		b.WriteString("## Food\n")
		for _, f := range rec.Food {
			fmt.Fprintf(&b, "- %s\n", f.Name)
		}
		b.WriteString("\n")
	}

	if rec.Miles != nil || rec.Elevation != nil {
		b.WriteString("## Running\n")
		if rec.Miles != nil {
			fmt.Fprintf(&b, "- **Miles:** %s mi\n", trimFloat(*rec.Miles))
		}
		if rec.Elevation != nil {
			fmt.Fprintf(&b, "- **Elevation:** %d ft\n", *rec.Elevation)
		}
		b.WriteString("\n")
	}

	if len(rec.Sokay) > 0 {
		b.WriteString("## Sokay\n")
		for _, entry := range rec.Sokay {
			fmt.Fprintf(&b, "- %s\n", entry)
		}
		b.WriteString("\n")
	}

	if rec.Strength != nil {
		b.WriteString("## Strength & Mobility\n")
		b.WriteString(*rec.Strength)
		b.WriteString("\n")
	}

	if rec.Notes != nil {
		b.WriteString("## Notes\n")
		b.WriteString(*rec.Notes)
		b.WriteString("\n")
	}

	return b.String()
}

// trimFloat prints a float without trailing zeros: 180.5 stays 180.5, 34.0
// becomes 34.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package journal

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is the ISO form every stored date uses. It is part of the
// on-disk contract: daily_logs.date is the primary key other tools match on.
const DateLayout = "2006-01-02"

// Normalize truncates t to its calendar date, anchored at midnight UTC so
// date arithmetic is immune to DST transitions.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date.
func Today() time.Time {
	return Normalize(time.Now())
}

// ParseDate parses a stored ISO date string. A failure here on a value read
// back from the database means the store itself cannot be trusted, so
// callers treat it as fatal.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date in the stored ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseHuman resolves a date argument from the command line. It accepts the
// ISO form directly, otherwise falls back to natural language ("today",
// "yesterday", "last monday"). An empty string means today.
func ParseHuman(s string) (time.Time, error) {
	if s == "" {
		return Today(), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Normalize(t), nil
	}
	res, err := dateParser.Parse(s, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	if res == nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return Normalize(res.Time), nil
}

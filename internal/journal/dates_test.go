package journal

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2024-03-15" {
		t.Errorf("FormatDate = %q, want 2024-03-15", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "03/15/2024", "2024-13-40"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted invalid input", s)
		}
	}
}

func TestNormalizeStripsTime(t *testing.T) {
	in := time.Date(2024, time.March, 15, 23, 59, 59, 999, time.Local)
	out := Normalize(in)

	if out.Hour() != 0 || out.Minute() != 0 || out.Second() != 0 {
		t.Errorf("Normalize left a time component: %v", out)
	}
	if out.Location() != time.UTC {
		t.Errorf("Normalize location = %v, want UTC", out.Location())
	}
}

func TestParseHuman(t *testing.T) {
	t.Run("empty means today", func(t *testing.T) {
		d, err := ParseHuman("")
		if err != nil {
			t.Fatalf("ParseHuman(\"\"): %v", err)
		}
		if !d.Equal(Today()) {
			t.Errorf("got %v, want today", d)
		}
	})

	t.Run("iso passthrough", func(t *testing.T) {
		d, err := ParseHuman("2024-03-15")
		if err != nil {
			t.Fatalf("ParseHuman: %v", err)
		}
		if got := FormatDate(d); got != "2024-03-15" {
			t.Errorf("got %s, want 2024-03-15", got)
		}
	})

	t.Run("natural language", func(t *testing.T) {
		d, err := ParseHuman("yesterday")
		if err != nil {
			t.Fatalf("ParseHuman(yesterday): %v", err)
		}
		if want := Normalize(time.Now().AddDate(0, 0, -1)); !d.Equal(want) {
			t.Errorf("got %v, want %v", d, want)
		}
	})

	t.Run("unrecognized", func(t *testing.T) {
		if _, err := ParseHuman("xyzzy plugh"); err == nil {
			t.Error("expected error for unrecognized input")
		}
	})
}

package stats

import (
	"testing"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
)

// now is a fixed reference date so month and year filters are deterministic.
var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func rec(t *testing.T, date string, elevation int64, miles float64) *journal.DayRecord {
	t.Helper()
	d, err := journal.ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", date, err)
	}
	r := journal.NewDayRecord(d)
	if elevation >= 0 {
		r.Elevation = &elevation
	}
	if miles >= 0 {
		r.Miles = &miles
	}
	return r
}

// TestBigVertDays verifies only current-month days at or above the
// threshold count.
func TestBigVertDays(t *testing.T) {
	recs := []*journal.DayRecord{
		rec(t, "2024-03-01", 1200, -1),
		rec(t, "2024-03-02", 800, -1),
		rec(t, "2024-03-03", 1500, -1),
		rec(t, "2024-03-04", 1000, -1), // exactly at threshold counts
		rec(t, "2024-02-28", 2000, -1), // wrong month
		rec(t, "2023-03-10", 2000, -1), // wrong year, same month
		rec(t, "2024-03-05", -1, -1),   // no elevation logged
	}

	if got := BigVertDays(recs, now); got != 3 {
		t.Errorf("BigVertDays() = %d, want 3", got)
	}
}

// TestYearElevation verifies all current-year gain sums, including
// sub-threshold days.
func TestYearElevation(t *testing.T) {
	recs := []*journal.DayRecord{
		rec(t, "2024-01-01", 1200, -1),
		rec(t, "2024-02-01", 800, -1),
		rec(t, "2023-01-01", 2000, -1),
	}

	if got := YearElevation(recs, now); got != 2000 {
		t.Errorf("YearElevation() = %d, want 2000", got)
	}
}

// TestYearMiles verifies year filtering and one-decimal rounding.
func TestYearMiles(t *testing.T) {
	tests := []struct {
		name string
		recs []*journal.DayRecord
		want float64
	}{
		{
			name: "filters by year",
			recs: []*journal.DayRecord{
				rec(t, "2024-01-01", -1, 5.5),
				rec(t, "2024-02-01", -1, 3.2),
				rec(t, "2023-01-01", -1, 10.0),
			},
			want: 8.7,
		},
		{
			name: "empty",
			recs: nil,
			want: 0,
		},
		{
			name: "skips unset miles",
			recs: []*journal.DayRecord{
				rec(t, "2024-01-01", -1, -1),
				rec(t, "2024-02-01", -1, 5.0),
			},
			want: 5.0,
		},
		{
			name: "rounds to one decimal",
			recs: []*journal.DayRecord{
				rec(t, "2024-01-01", -1, 7.64),
				rec(t, "2024-02-01", -1, 30.476),
			},
			want: 38.1,
		},
		{
			name: "rounds up",
			recs: []*journal.DayRecord{
				rec(t, "2024-01-01", -1, 7.65),
			},
			want: 7.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearMiles(tt.recs, now); got != tt.want {
				t.Errorf("YearMiles() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMonthMiles verifies the month filter excludes other months of the
// same year.
func TestMonthMiles(t *testing.T) {
	recs := []*journal.DayRecord{
		rec(t, "2024-03-01", -1, 4.3),
		rec(t, "2024-03-15", -1, 2.2),
		rec(t, "2024-02-01", -1, 9.9),
	}

	if got := MonthMiles(recs, now); got != 6.5 {
		t.Errorf("MonthMiles() = %v, want 6.5", got)
	}
}

// TestStreak verifies anchoring, consecutive-day counting, and break
// conditions.
func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		recs []*journal.DayRecord
		want int
	}{
		{
			name: "empty",
			recs: nil,
			want: 0,
		},
		{
			name: "three consecutive days",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 1200, -1),
				rec(t, "2024-03-19", 1500, -1),
				rec(t, "2024-03-18", 1100, -1),
			},
			want: 3,
		},
		{
			name: "most recent day below threshold",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 500, -1),
				rec(t, "2024-03-19", 1500, -1),
				rec(t, "2024-03-18", 1100, -1),
			},
			want: 0,
		},
		{
			name: "gap breaks streak",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 1200, -1),
				rec(t, "2024-03-19", 1500, -1),
				rec(t, "2024-03-17", 1100, -1),
			},
			want: 2,
		},
		{
			name: "sub-threshold day breaks streak",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 1200, -1),
				rec(t, "2024-03-19", 900, -1),
				rec(t, "2024-03-18", 1100, -1),
			},
			want: 0,
		},
		{
			name: "single day is not a streak",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 1200, -1),
			},
			want: 0,
		},
		{
			name: "anchored at most recent even when older runs are longer",
			recs: []*journal.DayRecord{
				rec(t, "2024-03-20", 800, -1),
				rec(t, "2024-03-10", 1200, -1),
				rec(t, "2024-03-09", 1200, -1),
				rec(t, "2024-03-08", 1200, -1),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.recs); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestStreakMessage verifies both message variants.
func TestStreakMessage(t *testing.T) {
	active := []*journal.DayRecord{
		rec(t, "2024-03-20", 1200, -1),
		rec(t, "2024-03-19", 1500, -1),
	}
	if got, want := StreakMessage(active), "You currently have 2 consecutive days of 1000+ vert!"; got != want {
		t.Errorf("StreakMessage() = %q, want %q", got, want)
	}

	if got, want := StreakMessage(nil), "Think about starting a streak of 1000+ feet of gain."; got != want {
		t.Errorf("StreakMessage() = %q, want %q", got, want)
	}
}

// TestMilesMessages verifies the summary lines, including the zero-miles
// month variant.
func TestMilesMessages(t *testing.T) {
	recs := []*journal.DayRecord{
		rec(t, "2024-03-01", -1, 12.34),
		rec(t, "2024-01-01", -1, 5.0),
	}

	if got, want := YearMilesMessage(recs, now), "You have 17.3 miles covered for 2024"; got != want {
		t.Errorf("YearMilesMessage() = %q, want %q", got, want)
	}
	if got, want := MonthMilesMessage(recs, now), "12.3 miles covered for the month of March"; got != want {
		t.Errorf("MonthMilesMessage() = %q, want %q", got, want)
	}
	if got, want := MonthMilesMessage(nil, now), "No miles covered yet for the month of March"; got != want {
		t.Errorf("MonthMilesMessage() = %q, want %q", got, want)
	}
}

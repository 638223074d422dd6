// Package stats computes training summaries over day records: monthly
// big-vert counts, yearly totals, and the consecutive-day elevation streak
// shown on the startup screen.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
)

// ElevationThreshold is the minimum single-day gain, in feet, that counts
// toward big-vert days and streaks.
const ElevationThreshold = 1000

// BigVertDays counts days in now's calendar month with elevation at or
// above the threshold.
func BigVertDays(recs []*journal.DayRecord, now time.Time) int {
	count := 0
	for _, rec := range recs {
		if !sameMonth(rec.Date, now) {
			continue
		}
		if elevation(rec) >= ElevationThreshold {
			count++
		}
	}
	return count
}

// YearElevation sums all elevation gain logged in now's calendar year,
// not just big-vert days.
func YearElevation(recs []*journal.DayRecord, now time.Time) int64 {
	var total int64
	for _, rec := range recs {
		if rec.Date.Year() != now.Year() {
			continue
		}
		if rec.Elevation != nil {
			total += *rec.Elevation
		}
	}
	return total
}

// YearMiles sums miles logged in now's calendar year, rounded to one
// decimal place.
func YearMiles(recs []*journal.DayRecord, now time.Time) float64 {
	var total float64
	for _, rec := range recs {
		if rec.Date.Year() != now.Year() {
			continue
		}
		if rec.Miles != nil {
			total += *rec.Miles
		}
	}
	return round1(total)
}

// MonthMiles sums miles logged in now's calendar month, rounded to one
// decimal place.
func MonthMiles(recs []*journal.DayRecord, now time.Time) float64 {
	var total float64
	for _, rec := range recs {
		if !sameMonth(rec.Date, now) {
			continue
		}
		if rec.Miles != nil {
			total += *rec.Miles
		}
	}
	return round1(total)
}

// Streak returns the length of the active big-vert streak, anchored at the
// most recently logged day and counting backward through consecutive
// calendar days. A day with no record, or one below the threshold, breaks
// the streak. Streaks shorter than two days return 0.
func Streak(recs []*journal.DayRecord) int {
	if len(recs) == 0 {
		return 0
	}

	byDate := make(map[time.Time]*journal.DayRecord, len(recs))
	dates := make([]time.Time, 0, len(recs))
	for _, rec := range recs {
		d := journal.Normalize(rec.Date)
		byDate[d] = rec
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	// The streak is only active if the most recent logged day qualifies.
	cursor := dates[0]
	if elevation(byDate[cursor]) < ElevationThreshold {
		return 0
	}

	count := 0
	for {
		rec, ok := byDate[cursor]
		if !ok || elevation(rec) < ElevationThreshold {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}

	if count < 2 {
		return 0
	}
	return count
}

// StreakMessage returns the startup-screen line describing the streak.
func StreakMessage(recs []*journal.DayRecord) string {
	if n := Streak(recs); n > 0 {
		return fmt.Sprintf("You currently have %d consecutive days of 1000+ vert!", n)
	}
	return "Think about starting a streak of 1000+ feet of gain."
}

// YearMilesMessage returns the miles summary line for now's year.
func YearMilesMessage(recs []*journal.DayRecord, now time.Time) string {
	return fmt.Sprintf("You have %.1f miles covered for %d", YearMiles(recs, now), now.Year())
}

// MonthMilesMessage returns the miles summary line for now's month.
func MonthMilesMessage(recs []*journal.DayRecord, now time.Time) string {
	miles := MonthMiles(recs, now)
	month := now.Format("January")
	if miles == 0 {
		return fmt.Sprintf("No miles covered yet for the month of %s", month)
	}
	return fmt.Sprintf("%.1f miles covered for the month of %s", miles, month)
}

func sameMonth(date, now time.Time) bool {
	return date.Year() == now.Year() && date.Month() == now.Month()
}

func elevation(rec *journal.DayRecord) int64 {
	if rec == nil || rec.Elevation == nil {
		return 0
	}
	return *rec.Elevation
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Package journal defines the daily training log records and the in-memory
// collection the UI operates on.
//
// A DayRecord aggregates everything tracked for one calendar date: body
// measurements, running metrics, the food log, the sokay (indulgence) log,
// and free-text notes. The date is the record's identity; the store keeps at
// most one row per date and every save rewrites the record's child
// collections in full.
package journal

import (
	"fmt"
	"sort"
	"time"
)

// FoodEntry is a single item in a day's food log.
// Entries have no identity beyond their position under the parent day.
type FoodEntry struct {
	Name  string  `json:"name"`
	Notes *string `json:"notes,omitempty"`
}

// DayRecord holds all tracked data for one calendar date.
//
// Scalar fields are pointers so that "not recorded" and "recorded as zero"
// stay distinguishable all the way down to the nullable database columns.
type DayRecord struct {
	// Date identifies the record. Normalized to midnight UTC; only the
	// year/month/day components are meaningful.
	Date time.Time `json:"date"`

	// ===== Measurements =====
	Weight *float64 `json:"weight,omitempty"` // pounds
	Waist  *float64 `json:"waist,omitempty"`  // inches

	// ===== Running =====
	Miles     *float64 `json:"miles_covered,omitempty"`  // miles walked/hiked/run
	Elevation *int64   `json:"elevation_gain,omitempty"` // feet of vertical gain

	// ===== Free text =====
	Strength *string `json:"strength_mobility,omitempty"` // strength & mobility work
	Notes    *string `json:"notes,omitempty"`             // daily notes

	// ===== Child collections (insertion order) =====
	Food  []FoodEntry `json:"food_entries,omitempty"`
	Sokay []string    `json:"sokay_entries,omitempty"`
}

// NewDayRecord returns an empty record for the given date.
func NewDayRecord(date time.Time) *DayRecord {
	return &DayRecord{Date: Normalize(date)}
}

// Validate checks the record is storable.
func (r *DayRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	for i, f := range r.Food {
		if f.Name == "" {
			return fmt.Errorf("food entry %d has an empty name", i)
		}
	}
	for i, s := range r.Sokay {
		if s == "" {
			return fmt.Errorf("sokay entry %d is empty", i)
		}
	}
	return nil
}

// AddFood appends a food entry to the day's food log.
func (r *DayRecord) AddFood(name string) {
	r.Food = append(r.Food, FoodEntry{Name: name})
}

// RemoveFood removes the food entry at index i. Out-of-range indexes are
// ignored so list-cursor races in the UI cannot panic.
func (r *DayRecord) RemoveFood(i int) {
	if i < 0 || i >= len(r.Food) {
		return
	}
	r.Food = append(r.Food[:i], r.Food[i+1:]...)
}

// AddSokay appends an indulgence entry to the day's sokay log.
func (r *DayRecord) AddSokay(entry string) {
	r.Sokay = append(r.Sokay, entry)
}

// RemoveSokay removes the sokay entry at index i. Out-of-range indexes are
// ignored.
func (r *DayRecord) RemoveSokay(i int) {
	if i < 0 || i >= len(r.Sokay) {
		return
	}
	r.Sokay = append(r.Sokay[:i], r.Sokay[i+1:]...)
}

// Clone returns a deep copy of the record. Every persist carries a full
// snapshot of the day taken at dispatch time, so background writes never
// alias memory the UI is still mutating.
func (r *DayRecord) Clone() *DayRecord {
	c := *r
	c.Weight = clonePtr(r.Weight)
	c.Waist = clonePtr(r.Waist)
	c.Miles = clonePtr(r.Miles)
	c.Elevation = clonePtr(r.Elevation)
	c.Strength = clonePtr(r.Strength)
	c.Notes = clonePtr(r.Notes)
	if r.Food != nil {
		c.Food = make([]FoodEntry, len(r.Food))
		for i, f := range r.Food {
			c.Food[i] = FoodEntry{Name: f.Name, Notes: clonePtr(f.Notes)}
		}
	}
	if r.Sokay != nil {
		c.Sokay = append([]string(nil), r.Sokay...)
	}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Journal is the in-memory collection of day records, kept sorted newest
// first to match the list the UI presents.
type Journal struct {
	Days []*DayRecord
}

// NewJournal builds a journal from loaded records, sorting them newest first.
func NewJournal(days []*DayRecord) *Journal {
	j := &Journal{Days: days}
	j.sort()
	return j
}

// Day returns the record for the given date, or nil if none exists yet.
func (j *Journal) Day(date time.Time) *DayRecord {
	date = Normalize(date)
	for _, d := range j.Days {
		if d.Date.Equal(date) {
			return d
		}
	}
	return nil
}

// EnsureDay returns the record for the given date, creating and inserting an
// empty one if the date has never been logged.
func (j *Journal) EnsureDay(date time.Time) *DayRecord {
	if d := j.Day(date); d != nil {
		return d
	}
	d := NewDayRecord(date)
	j.Days = append(j.Days, d)
	j.sort()
	return d
}

// Remove drops the record for the given date from the collection.
func (j *Journal) Remove(date time.Time) {
	date = Normalize(date)
	for i, d := range j.Days {
		if d.Date.Equal(date) {
			j.Days = append(j.Days[:i], j.Days[i+1:]...)
			return
		}
	}
}

// Len returns the number of logged days.
func (j *Journal) Len() int { return len(j.Days) }

func (j *Journal) sort() {
	sort.Slice(j.Days, func(a, b int) bool {
		return j.Days[a].Date.After(j.Days[b].Date)
	})
}

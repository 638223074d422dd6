// Package export converts day records to and from portable dump formats:
// JSONL (one day per line, used for backups and migration) and YAML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/papadavis47/mountains/internal/journal"
)

// dayDump is the wire form of a day record. Dates are the ISO string the
// database uses, so dumps stay greppable and diffable.
type dayDump struct {
	Date      string     `json:"date" yaml:"date"`
	Weight    *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Waist     *float64   `json:"waist,omitempty" yaml:"waist,omitempty"`
	Miles     *float64   `json:"miles_covered,omitempty" yaml:"miles_covered,omitempty"`
	Elevation *int64     `json:"elevation_gain,omitempty" yaml:"elevation_gain,omitempty"`
	Strength  *string    `json:"strength_mobility,omitempty" yaml:"strength_mobility,omitempty"`
	Notes     *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Food      []foodDump `json:"food_entries,omitempty" yaml:"food_entries,omitempty"`
	Sokay     []string   `json:"sokay_entries,omitempty" yaml:"sokay_entries,omitempty"`
}

type foodDump struct {
	Name  string  `json:"name" yaml:"name"`
	Notes *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func toDump(rec *journal.DayRecord) dayDump {
	d := dayDump{
		Date:      journal.FormatDate(rec.Date),
		Weight:    rec.Weight,
		Waist:     rec.Waist,
		Miles:     rec.Miles,
		Elevation: rec.Elevation,
		Strength:  rec.Strength,
		Notes:     rec.Notes,
		Sokay:     rec.Sokay,
	}
	for _, f := range rec.Food {
		d.Food = append(d.Food, foodDump{Name: f.Name, Notes: f.Notes})
	}
	return d
}

func fromDump(d dayDump) (*journal.DayRecord, error) {
	date, err := journal.ParseDate(d.Date)
	if err != nil {
		return nil, err
	}
	rec := &journal.DayRecord{
		Date:      date,
		Weight:    d.Weight,
		Waist:     d.Waist,
		Miles:     d.Miles,
		Elevation: d.Elevation,
		Strength:  d.Strength,
		Notes:     d.Notes,
		Sokay:     d.Sokay,
	}
	for _, f := range d.Food {
		rec.Food = append(rec.Food, journal.FoodEntry{Name: f.Name, Notes: f.Notes})
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record for %s: %w", d.Date, err)
	}
	return rec, nil
}

// WriteJSONL writes one JSON document per day record, newline-terminated.
func WriteJSONL(w io.Writer, recs []*journal.DayRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range recs {
		if err := enc.Encode(toDump(rec)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", journal.FormatDate(rec.Date), err)
		}
	}
	return nil
}

// ReadJSONL parses a JSONL dump back into day records. A malformed line
// fails the whole read with its line number.
func ReadJSONL(r io.Reader) ([]*journal.DayRecord, error) {
	dec := json.NewDecoder(r)
	var recs []*journal.DayRecord
	line := 0
	for {
		var d dayDump
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid JSON at line %d: %w", line+1, err)
		}
		line++

		rec, err := fromDump(d)
		if err != nil {
			return nil, fmt.Errorf("invalid record at line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// yamlDump wraps the day list so the document has a stable top-level key.
type yamlDump struct {
	Days []dayDump `yaml:"days"`
}

// WriteYAML writes all day records as a single YAML document.
func WriteYAML(w io.Writer, recs []*journal.DayRecord) error {
	doc := yamlDump{Days: make([]dayDump, 0, len(recs))}
	for _, rec := range recs {
		doc.Days = append(doc.Days, toDump(rec))
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml dump: %w", err)
	}
	return nil
}

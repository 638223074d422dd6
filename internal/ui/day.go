package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papadavis47/mountains/internal/journal"
)

// RenderDay formats one record for terminal output, section by section.
// Unset fields read "Not set" instead of disappearing so the layout stays
// scannable across days.
func RenderDay(rec *journal.DayRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", RenderTitle(rec.Date.Format("January 02, 2006")))

	b.WriteString(RenderHeader("Measurements") + "\n")
	fmt.Fprintf(&b, "  Weight: %s\n", optFloat(rec.Weight, "lbs"))
	fmt.Fprintf(&b, "  Waist: %s\n", optFloat(rec.Waist, "inches"))

	b.WriteString(RenderHeader("Running") + "\n")
	fmt.Fprintf(&b, "  Miles: %s\n", optFloat(rec.Miles, "mi"))
	fmt.Fprintf(&b, "  Elevation: %s\n", optInt(rec.Elevation, "ft"))

	b.WriteString(RenderHeader("Food") + "\n")
	if len(rec.Food) == 0 {
		b.WriteString("  " + RenderFaint("none") + "\n")
	}
	for _, f := range rec.Food {
		fmt.Fprintf(&b, "  - %s\n", f.Name)
		if f.Notes != nil {
			fmt.Fprintf(&b, "    %s\n", RenderFaint(*f.Notes))
		}
	}

	b.WriteString(RenderHeader("Sokay") + "\n")
	if len(rec.Sokay) == 0 {
		b.WriteString("  " + RenderFaint("none") + "\n")
	}
	for _, entry := range rec.Sokay {
		fmt.Fprintf(&b, "  - %s\n", entry)
	}

	b.WriteString(RenderHeader("Strength & Mobility") + "\n")
	fmt.Fprintf(&b, "  %s\n", optString(rec.Strength))

	b.WriteString(RenderHeader("Notes") + "\n")
	fmt.Fprintf(&b, "  %s\n", optString(rec.Notes))

	return b.String()
}

func optFloat(v *float64, unit string) string {
	if v == nil {
		return RenderFaint("Not set")
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " " + unit
}

func optInt(v *int64, unit string) string {
	if v == nil {
		return RenderFaint("Not set")
	}
	return fmt.Sprintf("%d %s", *v, unit)
}

func optString(v *string) string {
	if v == nil {
		return RenderFaint("Not set")
	}
	return *v
}

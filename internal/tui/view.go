package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/stats"
	"github.com/papadavis47/mountains/internal/ui"
)

const titleDateLayout = "January 02, 2006"

// banner is the startup screen art.
const banner = `        /\
       /  \        /\
      /    \  /\  /  \
     /      \/  \/    \
    /   /\   \  /      \
   /   /  \   \/   /\   \
  /___/    \___\__/  \___\

  M O U N T A I N S`

var (
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Italic(true)
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	streakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	focusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("221")).
			Padding(0, 1)
)

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenStartup:
		return m.viewStartup()
	case screenHome:
		return m.viewHome()
	case screenDaily, screenConfirmDeleteFood, screenConfirmDeleteSokay:
		// Item confirmations draw as a modal beneath the daily layout.
		s := m.viewDaily()
		switch m.screen {
		case screenConfirmDeleteFood:
			return s + "\n" + m.viewConfirmItem("food")
		case screenConfirmDeleteSokay:
			return s + "\n" + m.viewConfirmItem("sokay")
		}
		return s
	case screenInput:
		return m.viewInput()
	case screenConfirmDeleteDay:
		return m.viewConfirmDeleteDay()
	case screenHelp:
		return m.viewHelp()
	}
	return ""
}

func (m Model) viewStartup() string {
	now := m.today()

	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("For Inspiration and Mindfulness"))
	b.WriteString("\n\n\n")
	fmt.Fprintf(&b, "You have %d days of 1000+ feet vert in the month of %s.\n\n",
		stats.BigVertDays(m.journal.Days, now), now.Format("January"))
	fmt.Fprintf(&b, "You have %d feet for %s.\n\n",
		stats.YearElevation(m.journal.Days, now), now.Format("2006"))
	b.WriteString(streakStyle.Render(stats.StreakMessage(m.journal.Days)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(" N: Today's Log | L: Log List | q: Quit "))

	return m.center(b.String())
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(ui.RenderTitle("Mountains - A Trail Running Training Log"))
	b.WriteString("  " + ui.StatusLine(m.status) + "\n\n")

	var rows []string
	if m.journal.Len() == 0 {
		rows = append(rows, "No training logs yet. Press Enter to create one for today.")
	} else {
		for i, rec := range m.journal.Days {
			row := rec.Date.Format(titleDateLayout)
			if i == m.homeSel {
				row = selectedStyle.Render(row)
			}
			rows = append(rows, row)
		}
	}
	list := ui.RenderHeader("Daily Training Logs") + "\n\n" + strings.Join(rows, "\n")
	b.WriteString(boxStyle.Width(m.boxWidth()).Render(list))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑/k: Up | ↓/j: Down | Enter: Select/Today | Esc: Unfocus | D: Delete Day | S: Startup Screen | q: Quit "))
	return b.String()
}

func (m Model) viewDaily() string {
	rec := m.day()
	now := m.today()

	var b strings.Builder
	title := fmt.Sprintf("Mountains Training Log - %s", m.date.Format(titleDateLayout))
	b.WriteString(ui.RenderTitle(title))
	b.WriteString("  " + ui.StatusLine(m.status) + "\n\n")

	b.WriteString(m.renderSection(sectionMeasurements, "Measurements", m.measurementsLine(rec)))
	b.WriteString(m.renderSection(sectionRunning, "Running", m.runningLine(rec, now)))
	b.WriteString(m.renderSection(sectionFood, "Food Items", m.foodLines(rec)))
	sokayTitle := fmt.Sprintf("Sokay (Total: %d)", m.cumulativeSokay(m.date))
	b.WriteString(m.renderSection(sectionSokay, sokayTitle, m.sokayLines(rec)))
	b.WriteString(m.renderSection(sectionStrength, "Strength & Mobility", strengthText(rec)))
	b.WriteString(m.renderSection(sectionNotes, "Notes", notesText(rec)))

	b.WriteString(helpStyle.Render(" Shift+J/K: Section | Tab: Field | Enter: Add | j/k: List | E: Edit Item | D: Delete Item | Space: Shortcuts | S: Startup Screen | Esc: Back "))
	return b.String()
}

func (m Model) renderSection(sec section, title, content string) string {
	style := boxStyle
	if m.focused == sec {
		style = focusedBoxStyle
	}
	body := ui.RenderHeader(title) + "\n" + content
	return style.Width(m.boxWidth()).Render(body) + "\n"
}

// measurementsLine mirrors the weight and waist summary with a marker on
// the field Tab has focused.
func (m Model) measurementsLine(rec *journal.DayRecord) string {
	weight := "Weight: Not set"
	waist := "Waist Size: Not set"
	if rec != nil {
		if rec.Weight != nil {
			weight = fmt.Sprintf("Weight: %s lbs", trimFloat(*rec.Weight))
		}
		if rec.Waist != nil {
			waist = fmt.Sprintf("Waist Size: %s in", trimFloat(*rec.Waist))
		}
	}
	if m.focused == sectionMeasurements {
		if m.fieldIdx == 0 {
			weight = "► " + weight
		} else {
			waist = "► " + waist
		}
	}
	return weight + " | " + waist
}

func (m Model) runningLine(rec *journal.DayRecord, now time.Time) string {
	miles := "Miles: Not set"
	elevation := "Elevation: Not set"
	if rec != nil {
		if rec.Miles != nil {
			miles = fmt.Sprintf("Miles: %s mi", trimFloat(*rec.Miles))
		}
		if rec.Elevation != nil {
			elevation = fmt.Sprintf("Elevation: %d ft", *rec.Elevation)
		}
	}
	if m.focused == sectionRunning {
		if m.fieldIdx == 0 {
			miles = "► " + miles
		} else {
			elevation = "► " + elevation
		}
	}
	yearly := stats.YearMilesMessage(m.journal.Days, now)
	monthly := stats.MonthMilesMessage(m.journal.Days, now)
	return fmt.Sprintf("%s | %s | %s | %s", miles, elevation, yearly, monthly)
}

func (m Model) foodLines(rec *journal.DayRecord) string {
	if rec == nil || len(rec.Food) == 0 {
		return "No food entries yet. Press 'f' to add one."
	}
	rows := make([]string, len(rec.Food))
	for i, f := range rec.Food {
		row := "- " + f.Name
		if m.focused == sectionFood && i == m.foodSel {
			row = selectedStyle.Render(row)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func (m Model) sokayLines(rec *journal.DayRecord) string {
	if rec == nil || len(rec.Sokay) == 0 {
		return "No sokay entries yet. Press 'c' to add one."
	}
	rows := make([]string, len(rec.Sokay))
	for i, entry := range rec.Sokay {
		row := "- " + entry
		if m.focused == sectionSokay && i == m.sokaySel {
			row = selectedStyle.Render(row)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func strengthText(rec *journal.DayRecord) string {
	if rec != nil && rec.Strength != nil && strings.TrimSpace(*rec.Strength) != "" {
		return *rec.Strength
	}
	return "No exercises recorded yet. Press 't' to add training info."
}

func notesText(rec *journal.DayRecord) string {
	if rec != nil && rec.Notes != nil && strings.TrimSpace(*rec.Notes) != "" {
		return *rec.Notes
	}
	return "No notes for this day yet. Press 'n' to add notes."
}

func (m Model) viewInput() string {
	title := m.inputTitle()
	var widget string
	if m.input.multiline {
		widget = m.input.area.View()
	} else {
		widget = m.input.line.View()
	}

	hint := "Enter: Save | Esc: Cancel"
	if m.input.multiline {
		hint += " | Alt+Enter: New Line"
	}

	body := ui.RenderTitle(title) + "\n\n" + widget + "\n\n" + helpStyle.Render(hint)
	return m.center(focusedBoxStyle.Render(body))
}

func (m Model) inputTitle() string {
	date := m.date.Format(titleDateLayout)
	switch m.input.target {
	case targetAddFood:
		return "Add Food - " + date
	case targetEditFood:
		return "Edit Food - " + date
	case targetWeight:
		return "Edit Weight"
	case targetWaist:
		return "Edit Waist Size"
	case targetMiles:
		return "Edit Miles"
	case targetElevation:
		return "Edit Elevation"
	case targetAddSokay:
		return "Add Sokay Entry - " + date
	case targetEditSokay:
		return "Edit Sokay Entry - " + date
	case targetStrength:
		return "Edit Strength & Mobility - " + date
	default:
		return "Edit Notes - " + date
	}
}

func (m Model) viewConfirmDeleteDay() string {
	var b strings.Builder
	b.WriteString(ui.RenderTitle("Delete Day - Confirmation Required"))
	b.WriteString("\n\n")
	warning := fmt.Sprintf(`Are you sure you want to delete the entire log for %s?

This will permanently delete:
- All food entries
- All sokay entries
- All measurements (weight, waist size, miles, elevation)
- Strength & mobility exercises
- Daily notes

This action cannot be undone.

Type 'Y' to confirm deletion or 'N' to cancel.`, m.date.Format(titleDateLayout))
	b.WriteString(focusedBoxStyle.Width(m.boxWidth()).Render(ui.RenderErr("Warning: Permanent Deletion") + "\n\n" + warning))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Y: Delete Day | N/Esc: Cancel"))
	return b.String()
}

func (m Model) viewConfirmItem(kind string) string {
	rec := m.day()
	name := "Unknown"
	if rec != nil {
		switch kind {
		case "food":
			if m.confirmIdx < len(rec.Food) {
				name = rec.Food[m.confirmIdx].Name
			}
		case "sokay":
			if m.confirmIdx < len(rec.Sokay) {
				name = rec.Sokay[m.confirmIdx]
			}
		}
	}
	msg := fmt.Sprintf("Delete this %s item?\n\n%q\n\nPress 'Y' to confirm or 'N' to cancel.", kind, name)
	return focusedBoxStyle.Render(ui.RenderErr("Confirm Deletion") + "\n\n" + msg)
}

func (m Model) viewHelp() string {
	shortcuts := `Measurements:
  w - Edit weight
  s - Edit waist size

Activity:
  m - Edit miles covered
  l - Edit elevation gain

Nutrition:
  f - Add food item
  c - Add sokay entry

Training:
  t - Edit strength & mobility
  n - Edit daily notes
  Alt+Enter - Insert newline (in multiline fields)

Press Space to close`
	body := ui.RenderPass("Shortcuts") + "\n\n" + shortcuts
	return m.center(boxStyle.Render(body))
}

// center places content in the middle of the terminal when dimensions
// are known.
func (m Model) center(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) boxWidth() int {
	if m.width <= 4 {
		return 76
	}
	w := m.width - 2
	if w > 110 {
		w = 110
	}
	return w
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

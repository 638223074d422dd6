package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputTarget names the field a modal editor writes to.
type inputTarget int

const (
	targetAddFood inputTarget = iota
	targetEditFood
	targetWeight
	targetWaist
	targetMiles
	targetElevation
	targetAddSokay
	targetEditSokay
	targetStrength
	targetNotes
)

// inputState holds the live editor widgets. Scalar and list-entry fields
// use a single-line input; strength and notes use a textarea.
type inputState struct {
	target    inputTarget
	index     int // entry index for edit targets, -1 otherwise
	multiline bool
	line      textinput.Model
	area      textarea.Model
}

// openInput opens the editor for target prefilled with the field's
// current value.
func (m Model) openInput(target inputTarget, index int) (tea.Model, tea.Cmd) {
	return m.openInputWith(target, index, m.currentValue(target))
}

// openInputWith opens the editor with an explicit initial value, used
// when editing an existing list entry.
func (m Model) openInputWith(target inputTarget, index int, initial string) (tea.Model, tea.Cmd) {
	st := inputState{target: target, index: index}
	var cmd tea.Cmd

	switch target {
	case targetStrength, targetNotes:
		st.multiline = true
		ta := textarea.New()
		ta.SetValue(initial)
		ta.CursorEnd()
		ta.SetWidth(inputWidth(m.width))
		ta.SetHeight(6)
		cmd = ta.Focus()
		st.area = ta
	default:
		ti := textinput.New()
		switch target {
		case targetWeight, targetWaist, targetMiles:
			ti.Validate = validateDecimal
		case targetElevation:
			ti.Validate = validateInteger
		}
		ti.SetValue(initial)
		ti.CursorEnd()
		ti.Width = inputWidth(m.width)
		cmd = ti.Focus()
		st.line = ti
	}

	m.input = st
	m.screen = screenInput
	return m, cmd
}

// currentValue returns the stored value for a scalar target, formatted
// the way the editor should prefill it.
func (m *Model) currentValue(target inputTarget) string {
	rec := m.day()
	if rec == nil {
		return ""
	}
	switch target {
	case targetWeight:
		return formatOptFloat(rec.Weight)
	case targetWaist:
		return formatOptFloat(rec.Waist)
	case targetMiles:
		return formatOptFloat(rec.Miles)
	case targetElevation:
		if rec.Elevation == nil {
			return ""
		}
		return fmt.Sprintf("%d", *rec.Elevation)
	case targetStrength:
		if rec.Strength == nil {
			return ""
		}
		return *rec.Strength
	case targetNotes:
		if rec.Notes == nil {
			return ""
		}
		return *rec.Notes
	}
	return ""
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// updateInput handles keys while a modal editor is open. Enter commits,
// Escape cancels, and Alt+Enter inserts a newline in multiline editors.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenDaily
		return m, nil
	case "alt+enter":
		if m.input.multiline {
			m.input.area.InsertString("\n")
			return m, nil
		}
		return m, nil
	case "enter":
		m.applyInput()
		m.screen = screenDaily
		return m, nil
	}

	var cmd tea.Cmd
	if m.input.multiline {
		m.input.area, cmd = m.input.area.Update(msg)
	} else {
		m.input.line, cmd = m.input.line.Update(msg)
	}
	return m, cmd
}

// applyInput writes the editor value to the journal and queues the save.
// Empty input clears optional fields; empty names for list entries are
// dropped without touching the record.
func (m *Model) applyInput() {
	var value string
	if m.input.multiline {
		value = m.input.area.Value()
	} else {
		value = m.input.line.Value()
	}

	switch m.input.target {
	case targetAddFood:
		if value == "" {
			return
		}
		rec := m.ensureDay()
		rec.AddFood(value)
		m.persist(rec)

	case targetEditFood:
		if value == "" {
			return
		}
		rec := m.day()
		if rec == nil || m.input.index < 0 || m.input.index >= len(rec.Food) {
			return
		}
		rec.Food[m.input.index].Name = value
		m.persist(rec)

	case targetAddSokay:
		if value == "" {
			return
		}
		rec := m.ensureDay()
		rec.AddSokay(value)
		m.persist(rec)

	case targetEditSokay:
		if value == "" {
			return
		}
		rec := m.day()
		if rec == nil || m.input.index < 0 || m.input.index >= len(rec.Sokay) {
			return
		}
		rec.Sokay[m.input.index] = value
		m.persist(rec)

	case targetWeight:
		rec := m.ensureDay()
		rec.Weight = parseOptFloat(value)
		m.persist(rec)
	case targetWaist:
		rec := m.ensureDay()
		rec.Waist = parseOptFloat(value)
		m.persist(rec)
	case targetMiles:
		rec := m.ensureDay()
		rec.Miles = parseOptFloat(value)
		m.persist(rec)
	case targetElevation:
		rec := m.ensureDay()
		rec.Elevation = parseOptInt(value)
		m.persist(rec)

	case targetStrength:
		rec := m.ensureDay()
		rec.Strength = optText(value)
		m.persist(rec)
	case targetNotes:
		rec := m.ensureDay()
		rec.Notes = optText(value)
		m.persist(rec)
	}
}

// parseOptFloat maps empty or unparseable input to nil, clearing the
// field.
func parseOptFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptInt(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// optText maps whitespace-only input to nil.
func optText(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// validateDecimal permits digits with at most one decimal point.
func validateDecimal(s string) error {
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return fmt.Errorf("only one decimal point allowed")
			}
		default:
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

// validateInteger permits digits only.
func validateInteger(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

func inputWidth(termWidth int) int {
	if termWidth <= 0 {
		return 40
	}
	w := termWidth/2 - 6
	if w < 20 {
		w = 20
	}
	return w
}

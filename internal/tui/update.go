package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papadavis47/mountains/internal/store"
)

// Update routes events to the handler for the active screen. Confirmation
// and input screens capture every key; everything else shares the
// navigation handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.status = m.backend.Status()
		cmds := []tea.Cmd{tick()}
		if cmd := m.maybeSync(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil && !errors.Is(msg.err, store.ErrNotConnected) {
			m.logger.Printf("periodic sync failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.screen {
		case screenInput:
			return m.updateInput(msg)
		case screenConfirmDeleteDay:
			return m.updateConfirmDeleteDay(msg)
		case screenConfirmDeleteFood:
			return m.updateConfirmDeleteFood(msg)
		case screenConfirmDeleteSokay:
			return m.updateConfirmDeleteSokay(msg)
		default:
			return m.updateNav(msg)
		}
	}
	return m, nil
}

// maybeSync issues a background push when the idle interval has elapsed
// and the user is not mid-edit.
func (m *Model) maybeSync() tea.Cmd {
	if m.syncing || m.typing() {
		return nil
	}
	if time.Since(m.lastSync) < m.syncEvery {
		return nil
	}
	m.lastSync = time.Now()
	m.syncing = true
	backend := m.backend
	return func() tea.Msg {
		return syncDoneMsg{err: backend.Sync()}
	}
}

// updateNav handles keys for the startup, home, daily, and help screens.
func (m Model) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "J":
		if m.screen == screenDaily {
			m.sectionDown()
		}
	case "K":
		if m.screen == screenDaily {
			m.sectionUp()
		}
	case "tab":
		// Toggles Weight/Waist and Miles/Elevation focus.
		if m.screen == screenDaily && (m.focused == sectionMeasurements || m.focused == sectionRunning) {
			m.fieldIdx = 1 - m.fieldIdx
		}

	case "j", "down":
		switch m.screen {
		case screenDaily:
			m.listDown()
		case screenHome:
			m.homeDown()
		}
	case "k", "up":
		switch m.screen {
		case screenDaily:
			m.listUp()
		case screenHome:
			m.homeUp()
		}

	case "enter":
		switch m.screen {
		case screenDaily:
			return m.sectionEnter()
		case screenHome:
			m.homeEnter()
		}

	case "esc":
		switch m.screen {
		case screenHome:
			m.homeSel = -1
		case screenDaily:
			m.dailyEscape()
		}

	case "D":
		switch m.screen {
		case screenHome:
			if m.homeSel >= 0 && m.homeSel < m.journal.Len() {
				m.date = m.journal.Days[m.homeSel].Date
				m.screen = screenConfirmDeleteDay
			}
		case screenDaily:
			m.startDeleteItem()
		}

	case "E":
		if m.screen == screenDaily {
			switch m.focused {
			case sectionFood:
				return m.startEditFood()
			case sectionSokay:
				return m.startEditSokay()
			}
		}

	case "f":
		if m.screen == screenDaily {
			return m.openInput(targetAddFood, -1)
		}
	case "c":
		if m.screen == screenDaily {
			return m.openInput(targetAddSokay, -1)
		}
	case "w":
		if m.screen == screenDaily {
			return m.openInput(targetWeight, -1)
		}
	case "s":
		if m.screen == screenDaily {
			return m.openInput(targetWaist, -1)
		}
	case "m":
		if m.screen == screenDaily {
			return m.openInput(targetMiles, -1)
		}
	case "l":
		if m.screen == screenDaily {
			return m.openInput(targetElevation, -1)
		}
	case "t":
		if m.screen == screenDaily {
			return m.openInput(targetStrength, -1)
		}
	case "n":
		if m.screen == screenDaily {
			return m.openInput(targetNotes, -1)
		}

	case "N":
		if m.screen == screenStartup {
			m.date = m.today()
			m.ensureDay()
			m.enterDaily()
		}
	case "L":
		if m.screen == screenStartup {
			m.screen = screenHome
		}
	case "S":
		if m.screen == screenHome || m.screen == screenDaily {
			m.screen = screenStartup
		}

	case " ":
		switch m.screen {
		case screenDaily:
			m.screen = screenHelp
		case screenHelp:
			m.screen = screenDaily
		}
	}
	return m, nil
}

// enterDaily switches to the daily view with focus reset to the top.
func (m *Model) enterDaily() {
	m.screen = screenDaily
	m.focused = sectionMeasurements
	m.fieldIdx = 0
	m.foodSel = -1
	m.sokaySel = -1
}

func (m *Model) sectionDown() {
	if m.focused < sectionNotes {
		m.focused++
		m.fieldIdx = 0
	}
}

func (m *Model) sectionUp() {
	if m.focused > sectionMeasurements {
		m.focused--
		m.fieldIdx = 0
	}
}

// listDown moves the cursor within the focused Food or Sokay list. The
// first press focuses the first item.
func (m *Model) listDown() {
	rec := m.day()
	switch m.focused {
	case sectionFood:
		n := 0
		if rec != nil {
			n = len(rec.Food)
		}
		m.foodSel = moveDown(m.foodSel, n)
	case sectionSokay:
		n := 0
		if rec != nil {
			n = len(rec.Sokay)
		}
		m.sokaySel = moveDown(m.sokaySel, n)
	}
}

func (m *Model) listUp() {
	rec := m.day()
	switch m.focused {
	case sectionFood:
		n := 0
		if rec != nil {
			n = len(rec.Food)
		}
		m.foodSel = moveUp(m.foodSel, n)
	case sectionSokay:
		n := 0
		if rec != nil {
			n = len(rec.Sokay)
		}
		m.sokaySel = moveUp(m.sokaySel, n)
	}
}

func moveDown(sel, n int) int {
	if n == 0 {
		return -1
	}
	if sel < 0 {
		return 0
	}
	if sel+1 < n {
		return sel + 1
	}
	return sel
}

func moveUp(sel, n int) int {
	if n == 0 {
		return -1
	}
	if sel <= 0 {
		return 0
	}
	return sel - 1
}

func (m *Model) homeDown() {
	m.homeSel = moveDown(m.homeSel, m.journal.Len())
}

func (m *Model) homeUp() {
	m.homeSel = moveUp(m.homeSel, m.journal.Len())
}

// homeEnter opens the selected day, or today's when the list is empty.
func (m *Model) homeEnter() {
	if m.journal.Len() == 0 {
		m.date = m.today()
		m.ensureDay()
	} else if m.homeSel >= 0 && m.homeSel < m.journal.Len() {
		m.date = m.journal.Days[m.homeSel].Date
	}
	m.enterDaily()
}

// sectionEnter acts on the focused section: scalar fields open their
// editor, lists add a new entry.
func (m Model) sectionEnter() (tea.Model, tea.Cmd) {
	switch m.focused {
	case sectionMeasurements:
		if m.fieldIdx == 0 {
			return m.openInput(targetWeight, -1)
		}
		return m.openInput(targetWaist, -1)
	case sectionRunning:
		if m.fieldIdx == 0 {
			return m.openInput(targetMiles, -1)
		}
		return m.openInput(targetElevation, -1)
	case sectionFood:
		return m.openInput(targetAddFood, -1)
	case sectionSokay:
		return m.openInput(targetAddSokay, -1)
	case sectionStrength:
		return m.openInput(targetStrength, -1)
	default:
		return m.openInput(targetNotes, -1)
	}
}

// dailyEscape unfocuses a focused list item, otherwise returns home.
func (m *Model) dailyEscape() {
	switch m.focused {
	case sectionFood:
		if m.foodSel >= 0 {
			m.foodSel = -1
			return
		}
	case sectionSokay:
		if m.sokaySel >= 0 {
			m.sokaySel = -1
			return
		}
	}
	m.screen = screenHome
}

// startDeleteItem opens the confirmation modal for the selected list item.
func (m *Model) startDeleteItem() {
	rec := m.day()
	if rec == nil {
		return
	}
	switch m.focused {
	case sectionFood:
		if m.foodSel >= 0 && m.foodSel < len(rec.Food) {
			m.confirmIdx = m.foodSel
			m.screen = screenConfirmDeleteFood
		}
	case sectionSokay:
		if m.sokaySel >= 0 && m.sokaySel < len(rec.Sokay) {
			m.confirmIdx = m.sokaySel
			m.screen = screenConfirmDeleteSokay
		}
	}
}

func (m Model) startEditFood() (tea.Model, tea.Cmd) {
	rec := m.day()
	if rec == nil || m.foodSel < 0 || m.foodSel >= len(rec.Food) {
		return m, nil
	}
	return m.openInputWith(targetEditFood, m.foodSel, rec.Food[m.foodSel].Name)
}

func (m Model) startEditSokay() (tea.Model, tea.Cmd) {
	rec := m.day()
	if rec == nil || m.sokaySel < 0 || m.sokaySel >= len(rec.Sokay) {
		return m, nil
	}
	return m.openInputWith(targetEditSokay, m.sokaySel, rec.Sokay[m.sokaySel])
}

// updateConfirmDeleteDay handles the full-screen day deletion warning.
func (m Model) updateConfirmDeleteDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "Y":
		date := m.date
		m.journal.Remove(date)
		m.queue.EnqueueDelete(date)
		m.screen = screenHome
		m.homeSel = -1
	case "N", "esc":
		m.screen = screenHome
	}
	return m, nil
}

func (m Model) updateConfirmDeleteFood(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "Y":
		if rec := m.day(); rec != nil && m.confirmIdx < len(rec.Food) {
			rec.RemoveFood(m.confirmIdx)
			m.foodSel = clampSel(m.foodSel, len(rec.Food))
			m.persist(rec)
		}
		m.screen = screenDaily
	case "N", "esc":
		m.screen = screenDaily
	}
	return m, nil
}

func (m Model) updateConfirmDeleteSokay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "Y":
		if rec := m.day(); rec != nil && m.confirmIdx < len(rec.Sokay) {
			rec.RemoveSokay(m.confirmIdx)
			m.sokaySel = clampSel(m.sokaySel, len(rec.Sokay))
			m.persist(rec)
		}
		m.screen = screenDaily
	case "N", "esc":
		m.screen = screenDaily
	}
	return m, nil
}

// clampSel keeps the list cursor valid after a removal.
func clampSel(sel, n int) int {
	if n == 0 {
		return -1
	}
	if sel >= n {
		return n - 1
	}
	return sel
}

// Package tui implements the interactive terminal interface: a startup
// screen with elevation stats, a log list, and a sectioned daily view
// with modal editors. All mutations are applied to the in-memory journal
// first and handed to the write queue, so the UI never blocks on the
// database or the network.
package tui

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/store"
)

// Queue accepts persistence work without blocking the UI loop. Enqueued
// snapshots are applied in arrival order; failures are the queue's to log.
type Queue interface {
	EnqueueSave(rec *journal.DayRecord)
	EnqueueDelete(date time.Time)
}

// Backend exposes the store operations the UI drives directly: status
// polling for the indicator and explicit pushes for the idle sync timer.
type Backend interface {
	Status() store.Status
	Sync() error
}

type screen int

const (
	screenStartup screen = iota
	screenHome
	screenDaily
	screenInput
	screenConfirmDeleteDay
	screenConfirmDeleteFood
	screenConfirmDeleteSokay
	screenHelp
)

// section identifies one block of the daily view, ordered the way they
// appear on screen.
type section int

const (
	sectionMeasurements section = iota
	sectionRunning
	sectionFood
	sectionSokay
	sectionStrength
	sectionNotes
)

const sectionCount = 6

// idleSyncInterval is how often the UI pushes local commits while the
// user is not typing.
const idleSyncInterval = 240 * time.Second

// Options configures a Model. Journal, Queue, and Backend are required.
type Options struct {
	Journal   *journal.Journal
	Queue     Queue
	Backend   Backend
	Logger    *log.Logger
	SyncEvery time.Duration
	Today     func() time.Time
}

// Model is the bubbletea model for the whole application.
type Model struct {
	journal *journal.Journal
	queue   Queue
	backend Backend
	logger  *log.Logger
	today   func() time.Time

	screen screen
	date   time.Time
	status store.Status
	width  int
	height int

	// Home screen list selection, -1 when unfocused.
	homeSel int

	// Daily view focus state.
	focused  section
	fieldIdx int // 0 or 1 inside Measurements and Running
	foodSel  int // -1 when the food list is unfocused
	sokaySel int // -1 when the sokay list is unfocused

	// Modal editor state, valid while screen == screenInput.
	input inputState

	// Index pending a delete confirmation.
	confirmIdx int

	syncEvery time.Duration
	lastSync  time.Time
	syncing   bool

	quitting bool
}

// New builds the model. The UI starts on the startup screen with today
// selected, mirroring a fresh launch.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	today := opts.Today
	if today == nil {
		today = func() time.Time { return journal.Today() }
	}
	syncEvery := opts.SyncEvery
	if syncEvery <= 0 {
		syncEvery = idleSyncInterval
	}
	return Model{
		journal:   opts.Journal,
		queue:     opts.Queue,
		backend:   opts.Backend,
		logger:    logger,
		today:     today,
		screen:    screenStartup,
		date:      today(),
		homeSel:   -1,
		foodSel:   -1,
		sokaySel:  -1,
		syncEvery: syncEvery,
		lastSync:  time.Now(),
	}
}

// Run drives the model in the alternate screen until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init kicks off the status poll loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

type tickMsg time.Time

type syncDoneMsg struct{ err error }

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// day returns the record for the selected date, or nil when none exists.
func (m *Model) day() *journal.DayRecord {
	return m.journal.Day(m.date)
}

// ensureDay returns the record for the selected date, creating it when
// missing. New records are not persisted until a field is actually set.
func (m *Model) ensureDay() *journal.DayRecord {
	return m.journal.EnsureDay(m.date)
}

// persist snapshots the record onto the write queue. The in-memory
// journal already reflects the change; the queue owns delivery.
func (m *Model) persist(rec *journal.DayRecord) {
	m.queue.EnqueueSave(rec)
}

// typing reports whether a modal editor is open. The idle sync timer
// skips pushes while true.
func (m *Model) typing() bool {
	return m.screen == screenInput
}

// cumulativeSokay counts every sokay entry logged on or before date.
func (m *Model) cumulativeSokay(date time.Time) int {
	total := 0
	for _, rec := range m.journal.Days {
		if !rec.Date.After(date) {
			total += len(rec.Sokay)
		}
	}
	return total
}

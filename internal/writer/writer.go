// Package writer serializes journal mutations through a single goroutine.
//
// The UI mutates its in-memory journal optimistically and enqueues a
// snapshot of the changed day; the writer applies snapshots to the store in
// arrival order and then updates the markdown mirror. One consumer goroutine
// means writes for the same date can never interleave or land out of order,
// which is what makes the store's full-replace child semantics safe to use
// from an interactive loop.
//
// Persist outcomes are never silently discarded: every failure is written to
// the logger, even though the UI deliberately does not surface per-action
// errors.
package writer

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
)

// Persister is the slice of the store the writer drives.
type Persister interface {
	SaveDayContext(ctx context.Context, rec *journal.DayRecord) error
	DeleteDayContext(ctx context.Context, date time.Time) error
}

// Mirror is the markdown backup collaborator. Its errors are logged and
// dropped; the database is the source of truth.
type Mirror interface {
	WriteDay(rec *journal.DayRecord) error
	DeleteDay(date time.Time) error
}

type opKind int

const (
	opSave opKind = iota
	opDelete
)

type op struct {
	kind opKind
	rec  *journal.DayRecord
	date time.Time
}

// Config holds writer configuration.
type Config struct {
	// QueueSize is the channel capacity; enqueues block once it fills.
	QueueSize int

	// Logger receives persist outcomes.
	Logger *log.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		QueueSize: 64,
		Logger:    log.New(os.Stderr, "[writer] ", log.LstdFlags),
	}
}

// Writer owns the persistence queue.
type Writer struct {
	store  Persister
	mirror Mirror // may be nil
	config *Config

	ops chan op
	wg  sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// New creates a writer for the given store and optional mirror.
func New(store Persister, mirror Mirror) (*Writer, error) {
	return NewWithConfig(store, mirror, DefaultConfig())
}

// NewWithConfig creates a writer with custom configuration.
func NewWithConfig(store Persister, mirror Mirror, config *Config) (*Writer, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}
	if config.Logger == nil {
		config.Logger = DefaultConfig().Logger
	}
	return &Writer{
		store:  store,
		mirror: mirror,
		config: config,
		ops:    make(chan op, config.QueueSize),
	}, nil
}

// Start launches the consumer goroutine.
func (w *Writer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("writer already started")
	}
	w.started = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for o := range w.ops {
			w.apply(o)
		}
	}()
	return nil
}

// Stop drains the queue and waits for the consumer to finish. Safe to call
// more than once. After Stop, every previously enqueued mutation has been
// applied.
func (w *Writer) Stop() {
	w.mu.Lock()
	if w.stopped || !w.started {
		w.stopped = true
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.ops)
	w.mu.Unlock()

	w.wg.Wait()
}

// EnqueueSave schedules a persist of the given day. The record is deep
// copied at enqueue time so the caller can keep mutating its copy.
func (w *Writer) EnqueueSave(rec *journal.DayRecord) {
	w.enqueue(op{kind: opSave, rec: rec.Clone(), date: rec.Date})
}

// EnqueueDelete schedules removal of the given date.
func (w *Writer) EnqueueDelete(date time.Time) {
	w.enqueue(op{kind: opDelete, date: journal.Normalize(date)})
}

func (w *Writer) enqueue(o op) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		w.config.Logger.Printf("dropped %s for %s: writer stopped",
			o.kind.String(), journal.FormatDate(o.date))
		return
	}
	w.ops <- o
}

// Pending returns the number of queued, unapplied mutations.
func (w *Writer) Pending() int {
	return len(w.ops)
}

func (w *Writer) apply(o op) {
	date := journal.FormatDate(o.date)
	switch o.kind {
	case opSave:
		if err := w.store.SaveDayContext(context.Background(), o.rec); err != nil {
			w.config.Logger.Printf("save %s failed: %v", date, err)
			return
		}
		if w.mirror != nil {
			if err := w.mirror.WriteDay(o.rec); err != nil {
				w.config.Logger.Printf("markdown mirror for %s failed: %v", date, err)
			}
		}
	case opDelete:
		if err := w.store.DeleteDayContext(context.Background(), o.date); err != nil {
			w.config.Logger.Printf("delete %s failed: %v", date, err)
			return
		}
		if w.mirror != nil {
			if err := w.mirror.DeleteDay(o.date); err != nil {
				w.config.Logger.Printf("markdown delete for %s failed: %v", date, err)
			}
		}
	}
}

func (k opKind) String() string {
	if k == opDelete {
		return "delete"
	}
	return "save"
}

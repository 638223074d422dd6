package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tursodatabase/go-libsql"
)

const (
	// DBFileName is the fixed database filename inside the data directory.
	DBFileName = "mountains.db"

	lockFileName   = "mountains.lock"
	backupFileName = "pre-replica-backup.jsonl"

	defaultReplicaSyncInterval = 5 * time.Minute
)

// Config configures a Store.
type Config struct {
	// Dir is the data directory. Created if missing.
	Dir string

	// Logger receives store diagnostics. Nil defaults to stderr.
	Logger *log.Logger

	// ReplicaSyncInterval is the background pull interval of the embedded
	// replica once upgraded. Zero means the default of five minutes.
	ReplicaSyncInterval time.Duration
}

// DefaultConfig returns the standard configuration for a data directory.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:                 dir,
		ReplicaSyncInterval: defaultReplicaSyncInterval,
	}
}

// replicaHandle is the slice of the libsql connector the store depends on,
// narrowed so tests can substitute a double.
type replicaHandle interface {
	Sync() (libsql.Replicated, error)
	Close() error
}

// Store owns the database handle and the connection state. The handle is
// swappable: the replica upgrade replaces it at runtime, so all access goes
// through the store's lock. Reads (status polls, queries) share the lock;
// only the swap takes it exclusively.
type Store struct {
	mu        sync.RWMutex
	db        *sql.DB
	connector replicaHandle // non-nil once running as an embedded replica
	status    Status

	path         string // database file path
	dir          string
	syncInterval time.Duration
	logger       *log.Logger

	upgradeOnce sync.Once
	lockFile    *os.File

	// pushes counts attempted replica pushes; offline-safety tests assert
	// it stays at zero while not connected.
	pushes atomic.Int64
}

// Open creates the data directory if needed, opens (or creates) the local
// database file, and applies the schema. It is synchronous and local-disk
// only; the caller may block its first frame on it.
func Open(cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[store] ", log.LstdFlags)
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	lock, err := acquireLock(filepath.Join(cfg.Dir, lockFileName))
	if err != nil {
		return nil, err
	}

	path := filepath.Join(cfg.Dir, DBFileName)
	db, err := openLocal(path)
	if err != nil {
		releaseLock(lock)
		return nil, err
	}

	interval := cfg.ReplicaSyncInterval
	if interval <= 0 {
		interval = defaultReplicaSyncInterval
	}

	s := &Store{
		db:           db,
		path:         path,
		dir:          cfg.Dir,
		syncInterval: interval,
		logger:       logger,
		lockFile:     lock,
		status:       Status{State: StateDisconnected},
	}

	if err := s.InitSchema(); err != nil {
		db.Close()
		releaseLock(lock)
		return nil, err
	}
	return s, nil
}

// openLocal opens a local-only libsql database file and configures the
// connection pool.
func openLocal(path string) (*sql.DB, error) {
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applyPragmas sets the session pragmas. libsql already defaults to WAL and
// enforced foreign keys; setting them keeps the contract explicit.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}
	return nil
}

// Close checkpoints the WAL, closes the database handle and any replica
// connector, and releases the single-instance lock.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	if s.db != nil {
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			s.logger.Printf("wal checkpoint on close failed: %v", err)
		}
		if err := s.db.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
		s.db = nil
	}
	if s.connector != nil {
		if err := s.connector.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close replica connector: %w", err)
		}
		s.connector = nil
	}
	if s.lockFile != nil {
		releaseLock(s.lockFile)
		s.lockFile = nil
	}
	return firstErr
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// RawDB exposes the live database handle for maintenance tooling and tests.
// Callers must not hold it across a replica upgrade.
func (s *Store) RawDB() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tursodatabase/go-libsql"

	"github.com/papadavis47/mountains/internal/export"
)

// WALPath returns the write-ahead-log sidecar path.
func (s *Store) WALPath() string { return s.path + "-wal" }

// SHMPath returns the shared-memory sidecar path.
func (s *Store) SHMPath() string { return s.path + "-shm" }

// InfoPath returns the replica metadata sidecar path. Its presence marks
// the database file as an embedded replica.
func (s *Store) InfoPath() string { return s.path + "-info" }

// IsReplica reports whether the local file is already an embedded replica.
func (s *Store) IsReplica() bool {
	_, err := os.Stat(s.InfoPath())
	return err == nil
}

// UpgradeToReplica converts the local-only store into an embedded replica
// of the remote database. It is intended to run in a background goroutine
// and runs at most once per process; later calls return nil without doing
// anything.
//
// On success the live handle is swapped to the replica and the state moves
// to Connected. On failure the state moves to Error and the local handle
// stays in place, so the journal keeps operating offline.
//
// If the local file is not already a replica it cannot be converted in
// place: the file and its sidecars are deleted first (after a best-effort
// JSONL backup into the data directory), and the schema is re-applied to
// the fresh replica. Local rows the remote has never seen do not survive
// this; callers load the journal into memory before triggering the upgrade.
func (s *Store) UpgradeToReplica(url, token string) error {
	if url == "" || token == "" {
		return fmt.Errorf("replica upgrade requires both a database URL and an auth token")
	}

	var err error
	ran := false
	s.upgradeOnce.Do(func() {
		ran = true
		err = s.upgradeToReplica(url, token)
	})
	if !ran {
		s.logger.Printf("replica upgrade already attempted this process; skipping")
		return nil
	}
	return err
}

func (s *Store) upgradeToReplica(url, token string) error {
	// Defensive reset so a stale Connected from a previous code path can
	// never gate syncs at a dead remote.
	s.setStatus(Status{State: StateDisconnected})

	reset := false
	if !s.IsReplica() {
		s.backupBeforeReset()
		if err := s.removeLocalFiles(); err != nil {
			s.setStatus(Status{State: StateError, Message: err.Error()})
			return fmt.Errorf("failed to reset local database for replica: %w", err)
		}
		reset = true
		s.logger.Printf("removed local-only database at %s for first replica setup", s.path)
	}

	connector, err := libsql.NewEmbeddedReplicaConnector(s.path, url,
		libsql.WithAuthToken(token),
		libsql.WithSyncInterval(s.syncInterval),
	)
	if err != nil {
		s.setStatus(Status{State: StateError, Message: err.Error()})
		return fmt.Errorf("failed to build embedded replica: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.Ping(); err != nil {
		db.Close()
		connector.Close()
		s.setStatus(Status{State: StateError, Message: err.Error()})
		return fmt.Errorf("failed to connect to replica: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	if err := applyPragmas(db); err != nil {
		db.Close()
		connector.Close()
		s.setStatus(Status{State: StateError, Message: err.Error()})
		return err
	}

	// Swap the live handle. Exclusive lock: in-flight writes hold the read
	// side, so no write can land on a half-replaced handle.
	s.mu.Lock()
	old := s.db
	s.db = db
	s.connector = connector
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}

	if reset {
		// The fresh replica file starts empty until the first pull; make
		// sure the schema exists either way.
		if err := s.InitSchema(); err != nil {
			s.setStatus(Status{State: StateError, Message: err.Error()})
			return err
		}
	}

	s.setStatus(Status{State: StateConnected})
	s.logger.Printf("upgraded to embedded replica of %s", url)
	return nil
}

// backupBeforeReset writes the current rows to a JSONL file before the
// destructive reset. Best-effort: the upgrade proceeds even if it fails.
func (s *Store) backupBeforeReset() {
	recs, err := s.LoadAll()
	if err != nil {
		s.logger.Printf("pre-replica backup skipped: %v", err)
		return
	}
	if len(recs) == 0 {
		return
	}

	path := filepath.Join(s.dir, backupFileName)
	f, err := os.Create(path)
	if err != nil {
		s.logger.Printf("pre-replica backup skipped: %v", err)
		return
	}
	defer f.Close()

	if err := export.WriteJSONL(f, recs); err != nil {
		s.logger.Printf("pre-replica backup failed: %v", err)
		return
	}
	s.logger.Printf("backed up %d day(s) to %s before replica reset", len(recs), path)
}

// removeLocalFiles deletes the database file and its WAL/SHM sidecars.
// Missing files are fine; anything else aborts the upgrade.
func (s *Store) removeLocalFiles() error {
	for _, p := range []string{s.path, s.WALPath(), s.SHMPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

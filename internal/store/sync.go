package store

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by Sync when no embedded replica is active.
var ErrNotConnected = errors.New("not connected to a remote replica")

// Sync pushes local WAL frames to the remote replica. It returns
// ErrNotConnected unless the store is Connected. A failed push does not
// change the connection state; the replica's periodic pull and the next
// opportunistic push are the retry path.
func (s *Store) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status.State != StateConnected || s.connector == nil {
		return ErrNotConnected
	}

	s.pushes.Add(1)
	rep, err := s.connector.Sync()
	if err != nil {
		return fmt.Errorf("replica sync failed: %w", err)
	}
	if rep.FramesSynced > 0 {
		s.logger.Printf("pushed %d frames to remote (frame %d)", rep.FramesSynced, rep.FrameNo)
	}
	return nil
}

// maybeSync is the opportunistic push after a successful commit: a no-op
// while not connected, best-effort otherwise. Failures are logged, never
// returned, because the local write already succeeded.
func (s *Store) maybeSync() {
	if err := s.Sync(); err != nil {
		if errors.Is(err, ErrNotConnected) {
			return
		}
		s.logger.Printf("opportunistic sync failed: %v", err)
	}
}

package store

// State is the replica connection state the UI polls every frame.
type State int

const (
	// StateDisconnected means no remote is configured, or the upgrade has
	// not run yet. The journal operates purely against the local file.
	StateDisconnected State = iota

	// StateConnected means the embedded replica is active and pushes are
	// worth attempting.
	StateConnected

	// StateError means the replica upgrade failed. The message carries the
	// underlying cause for display.
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is the state plus, for StateError, a human-readable message.
type Status struct {
	State   State
	Message string
}

// Status returns the current connection status. Safe to call from any
// goroutine; per-frame polling shares the read lock with in-flight writes.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

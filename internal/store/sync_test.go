package store

import (
	"errors"
	"testing"
	"time"

	"github.com/tursodatabase/go-libsql"

	"github.com/papadavis47/mountains/internal/journal"
)

// fakeReplica stands in for the libsql connector so sync behavior can be
// tested without a remote.
type fakeReplica struct {
	calls   int
	syncErr error
}

func (f *fakeReplica) Sync() (libsql.Replicated, error) {
	f.calls++
	return libsql.Replicated{FrameNo: 7, FramesSynced: 1}, f.syncErr
}

func (f *fakeReplica) Close() error { return nil }

func connect(s *Store, f *fakeReplica) {
	s.mu.Lock()
	s.connector = f
	s.status = Status{State: StateConnected}
	s.mu.Unlock()
}

// TestSync_NotConnected tests the gate in the manual sync path
func TestSync_NotConnected(t *testing.T) {
	s := testStore(t)

	if err := s.Sync(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Sync() = %v, want ErrNotConnected", err)
	}
}

// TestSync_PushesWhenConnected tests that a connected store pushes frames
func TestSync_PushesWhenConnected(t *testing.T) {
	s := testStore(t)
	f := &fakeReplica{}
	connect(s, f)

	if err := s.Sync(); err != nil {
		t.Fatalf("Sync() failed: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("connector.Sync() called %d times, want 1", f.calls)
	}
}

// TestSync_FailureKeepsConnected tests the anti-flap policy: a failed push
// does not change connection state
func TestSync_FailureKeepsConnected(t *testing.T) {
	s := testStore(t)
	f := &fakeReplica{syncErr: errors.New("network down")}
	connect(s, f)

	if err := s.Sync(); err == nil {
		t.Fatal("Sync() should surface the push error")
	}
	if got := s.Status(); got.State != StateConnected {
		t.Errorf("state after failed push = %v, want connected", got.State)
	}
}

// TestSaveDay_OfflineNeverPushes tests that save and delete while not
// connected never touch the sync path
func TestSaveDay_OfflineNeverPushes(t *testing.T) {
	s := testStore(t)

	states := []Status{
		{State: StateDisconnected},
		{State: StateError, Message: "upgrade failed"},
	}
	for _, st := range states {
		s.setStatus(st)

		rec := journal.NewDayRecord(day(2024, time.March, 15))
		rec.AddFood("oatmeal")
		mustSave(t, s, rec)
		if err := s.DeleteDay(rec.Date); err != nil {
			t.Fatalf("DeleteDay() failed while %v: %v", st.State, err)
		}
	}

	if got := s.pushes.Load(); got != 0 {
		t.Errorf("pushes while offline = %d, want 0", got)
	}
}

// TestSaveDay_OpportunisticPush tests that a connected save pushes and that
// push failures never fail the save
func TestSaveDay_OpportunisticPush(t *testing.T) {
	t.Run("push after commit", func(t *testing.T) {
		s := testStore(t)
		f := &fakeReplica{}
		connect(s, f)

		rec := journal.NewDayRecord(day(2024, time.March, 15))
		mustSave(t, s, rec)

		if f.calls != 1 {
			t.Errorf("connector.Sync() called %d times, want 1", f.calls)
		}
	})

	t.Run("push failure is swallowed", func(t *testing.T) {
		s := testStore(t)
		f := &fakeReplica{syncErr: errors.New("network down")}
		connect(s, f)

		rec := journal.NewDayRecord(day(2024, time.March, 15))
		if err := s.SaveDay(rec); err != nil {
			t.Fatalf("SaveDay() surfaced a push failure: %v", err)
		}
		if got := countRows(t, s, "daily_logs", "2024-03-15"); got != 1 {
			t.Errorf("row was not committed: count = %d", got)
		}
	})
}

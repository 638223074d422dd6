package store

import (
	"os"
	"testing"
	"time"

	"github.com/papadavis47/mountains/internal/export"
	"github.com/papadavis47/mountains/internal/journal"
)

// TestIsReplica_SidecarDetection tests replica detection via the -info file
func TestIsReplica_SidecarDetection(t *testing.T) {
	s := testStore(t)

	if s.IsReplica() {
		t.Fatal("fresh local store reported as replica")
	}

	if err := os.WriteFile(s.InfoPath(), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create sidecar: %v", err)
	}
	if !s.IsReplica() {
		t.Error("store with -info sidecar not reported as replica")
	}
}

// TestUpgradeToReplica_RequiresCredentials tests argument validation
func TestUpgradeToReplica_RequiresCredentials(t *testing.T) {
	s := testStore(t)

	if err := s.UpgradeToReplica("", "token"); err == nil {
		t.Error("upgrade without URL should fail")
	}
	if err := s.UpgradeToReplica("libsql://db.example", ""); err == nil {
		t.Error("upgrade without token should fail")
	}
	if got := s.Status(); got.State != StateDisconnected {
		t.Errorf("state after rejected args = %v, want disconnected", got.State)
	}
}

// TestUpgradeToReplica_DestructiveReset tests the first-upgrade path: local
// file and sidecars must be deleted (after a backup) before the remote
// connection is attempted, and a connect failure must leave the store
// operating offline in the Error state
func TestUpgradeToReplica_DestructiveReset(t *testing.T) {
	s := testStore(t)

	weight := 180.5
	rec := journal.NewDayRecord(day(2024, time.March, 15))
	rec.Weight = &weight
	rec.AddFood("oatmeal")
	mustSave(t, s, rec)

	// .invalid never resolves, so the connector build fails after the
	// destructive reset has already happened.
	err := s.UpgradeToReplica("libsql://mountains.invalid", "token")
	if err == nil {
		t.Fatal("upgrade against unresolvable remote should fail")
	}

	if _, statErr := os.Stat(s.Path()); !os.IsNotExist(statErr) {
		t.Errorf("local database file still exists after reset: %v", statErr)
	}

	if got := s.Status(); got.State != StateError {
		t.Errorf("state after failed upgrade = %v, want error", got.State)
	}
	if got := s.Status(); got.Message == "" {
		t.Error("error state carries no message")
	}

	// The pre-reset backup captured the rows that were about to be lost.
	f, err := os.Open(s.Dir() + "/pre-replica-backup.jsonl")
	if err != nil {
		t.Fatalf("pre-replica backup missing: %v", err)
	}
	defer f.Close()
	recs, err := export.ReadJSONL(f)
	if err != nil {
		t.Fatalf("backup unreadable: %v", err)
	}
	if len(recs) != 1 || journal.FormatDate(recs[0].Date) != "2024-03-15" {
		t.Errorf("backup content = %v, want the 2024-03-15 record", recs)
	}

	// The journal keeps working offline on the surviving handle.
	later := journal.NewDayRecord(day(2024, time.March, 16))
	mustSave(t, s, later)
}

// TestUpgradeToReplica_OncePerProcess tests that the upgrade never runs twice
func TestUpgradeToReplica_OncePerProcess(t *testing.T) {
	s := testStore(t)

	if err := s.UpgradeToReplica("libsql://mountains.invalid", "token"); err == nil {
		t.Fatal("first upgrade attempt should fail against unresolvable remote")
	}
	first := s.Status()

	if err := s.UpgradeToReplica("libsql://mountains.invalid", "token"); err != nil {
		t.Fatalf("second upgrade call should be a no-op, got: %v", err)
	}
	if got := s.Status(); got != first {
		t.Errorf("second call changed status from %+v to %+v", first, got)
	}
}

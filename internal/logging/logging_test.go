package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestSink_WritesToFile verifies log lines land in the rotated file with
// each logger's prefix.
func TestSink_WritesToFile(t *testing.T) {
	dir := t.TempDir()

	sink, closer := Sink(dir, false)
	New(sink, "[store] ").Printf("hello from the store")
	New(sink, "[writer] ").Printf("hello from the writer")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	got := string(data)
	for _, want := range []string{"[store] ", "hello from the store", "[writer] ", "hello from the writer"} {
		if !strings.Contains(got, want) {
			t.Errorf("log file missing %q:\n%s", want, got)
		}
	}
}

// TestSink_CreatesDirectory verifies the sink creates missing parents on
// first write.
func TestSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	sink, closer := Sink(dir, false)
	defer closer.Close()
	New(sink, "[test] ").Printf("first line")

	if _, err := os.Stat(filepath.Join(dir, LogFileName)); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// resetEnv clears every variable Load consults so host settings cannot
// leak into assertions.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MOUNTAINS_DATA_DIR", "TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN", "MOUNTAINS_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoad_Defaults verifies built-in values apply when no file or env
// vars are present.
func TestLoad_Defaults(t *testing.T) {
	resetEnv(t)
	t.Setenv("MOUNTAINS_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SyncInterval != 240*time.Second {
		t.Errorf("SyncInterval = %v, want 240s", cfg.SyncInterval)
	}
	if cfg.ReplicaSyncInterval != 300*time.Second {
		t.Errorf("ReplicaSyncInterval = %v, want 300s", cfg.ReplicaSyncInterval)
	}
	if cfg.CloudConfigured() {
		t.Errorf("CloudConfigured() = true with no credentials")
	}
	if cfg.Verbose {
		t.Errorf("Verbose = true by default")
	}
}

// TestLoad_ConfigFile verifies config.toml in the data directory is read.
func TestLoad_ConfigFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	t.Setenv("MOUNTAINS_DATA_DIR", dir)

	file := "sync_interval = \"20s\"\nverbose = true\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(file), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SyncInterval != 20*time.Second {
		t.Errorf("SyncInterval = %v, want 20s", cfg.SyncInterval)
	}
	if !cfg.Verbose {
		t.Errorf("Verbose = false, want true from config file")
	}
	// Keys the file omits keep their defaults.
	if cfg.ReplicaSyncInterval != 300*time.Second {
		t.Errorf("ReplicaSyncInterval = %v, want 300s", cfg.ReplicaSyncInterval)
	}
}

// TestLoad_EnvOverridesFile verifies environment variables take
// precedence over the config file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	t.Setenv("MOUNTAINS_DATA_DIR", dir)

	file := "turso_url = \"libsql://file.example.io\"\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(file), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TURSO_DATABASE_URL", "libsql://env.example.io")
	t.Setenv("TURSO_AUTH_TOKEN", "token-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TursoURL != "libsql://env.example.io" {
		t.Errorf("TursoURL = %q, want env value", cfg.TursoURL)
	}
	if !cfg.CloudConfigured() {
		t.Errorf("CloudConfigured() = false with both credentials set")
	}
}

// TestLoad_MalformedFile verifies a broken config file is an error rather
// than silently ignored.
func TestLoad_MalformedFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	t.Setenv("MOUNTAINS_DATA_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("sync_interval = = oops"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatalf("Load() succeeded with malformed config file")
	}
}

// TestWriteStarterFile verifies the starter file is created once and
// never clobbers an existing one.
func TestWriteStarterFile(t *testing.T) {
	cfg := &Config{
		DataDir:             t.TempDir(),
		SyncInterval:        240 * time.Second,
		ReplicaSyncInterval: 300 * time.Second,
		TursoToken:          "secret",
	}

	if err := cfg.WriteStarterFile(); err != nil {
		t.Fatalf("WriteStarterFile() error = %v", err)
	}
	data, err := os.ReadFile(cfg.Path(ConfigFileName))
	if err != nil {
		t.Fatalf("failed to read starter file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "sync_interval = \"4m0s\"") {
		t.Errorf("starter file missing readable sync_interval:\n%s", content)
	}
	if strings.Contains(content, "secret") {
		t.Errorf("starter file leaked credentials:\n%s", content)
	}

	custom := []byte("verbose = true\n")
	if err := os.WriteFile(cfg.Path(ConfigFileName), custom, 0644); err != nil {
		t.Fatalf("failed to overwrite config: %v", err)
	}
	if err := cfg.WriteStarterFile(); err != nil {
		t.Fatalf("WriteStarterFile() second call error = %v", err)
	}
	data, _ = os.ReadFile(cfg.Path(ConfigFileName))
	if string(data) != string(custom) {
		t.Errorf("WriteStarterFile() clobbered an existing config file")
	}
}

// TestVersionStamp verifies first-run, upgrade, and steady-state behavior.
func TestVersionStamp(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	prev, err := cfg.VersionStamp("0.2.0")
	if err != nil {
		t.Fatalf("VersionStamp() error = %v", err)
	}
	if prev != "" {
		t.Errorf("first run previous = %q, want empty", prev)
	}

	prev, err = cfg.VersionStamp("0.3.0")
	if err != nil {
		t.Fatalf("VersionStamp() error = %v", err)
	}
	if prev != "0.2.0" {
		t.Errorf("previous = %q, want 0.2.0", prev)
	}

	prev, err = cfg.VersionStamp("0.3.0")
	if err != nil {
		t.Fatalf("VersionStamp() error = %v", err)
	}
	if prev != "0.3.0" {
		t.Errorf("steady-state previous = %q, want 0.3.0", prev)
	}
}

// TestIsUpgrade covers ordering, equality, and junk input.
func TestIsUpgrade(t *testing.T) {
	tests := []struct {
		previous, current string
		want              bool
	}{
		{"0.1.0", "0.2.0", true},
		{"v0.1.0", "0.1.1", true},
		{"0.2.0", "0.2.0", false},
		{"0.3.0", "0.2.0", false},
		{"", "0.2.0", false},
		{"garbage", "0.2.0", false},
		{"0.1.0", "dev", false},
	}

	for _, tt := range tests {
		if got := IsUpgrade(tt.previous, tt.current); got != tt.want {
			t.Errorf("IsUpgrade(%q, %q) = %v, want %v", tt.previous, tt.current, got, tt.want)
		}
	}
}

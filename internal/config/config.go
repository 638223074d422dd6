// Package config loads application settings from, in increasing
// precedence, built-in defaults, config.toml in the data directory, and
// environment variables. A .env file in the working directory is folded
// into the environment first, so shell exports still win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigFileName is the optional settings file searched for in the data
// directory.
const ConfigFileName = "config.toml"

// Config holds every tunable the application reads at startup.
type Config struct {
	// DataDir is where the database, markdown mirrors, and logs live.
	DataDir string `mapstructure:"data_dir"`

	// TursoURL and TursoToken enable the embedded replica when both are
	// set. They are usually supplied via TURSO_DATABASE_URL and
	// TURSO_AUTH_TOKEN rather than the config file.
	TursoURL   string `mapstructure:"turso_url"`
	TursoToken string `mapstructure:"turso_token"`

	// SyncInterval is how often the app pushes local commits while idle.
	SyncInterval time.Duration `mapstructure:"sync_interval"`

	// ReplicaSyncInterval is handed to the libsql connector for its own
	// background pull cadence.
	ReplicaSyncInterval time.Duration `mapstructure:"replica_sync_interval"`

	// Verbose echoes the log file to stderr.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the built-in settings, rooted under ~/.mountains.
func Default() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	return &Config{
		DataDir:             filepath.Join(home, ".mountains"),
		SyncInterval:        240 * time.Second,
		ReplicaSyncInterval: 300 * time.Second,
	}, nil
}

// Load resolves the effective configuration. A missing config file is not
// an error; a malformed one is.
func Load() (*Config, error) {
	// .env is optional and only fills in unset variables.
	_ = godotenv.Load()

	def, err := Default()
	if err != nil {
		return nil, err
	}

	dataDir := def.DataDir
	if dir := os.Getenv("MOUNTAINS_DATA_DIR"); dir != "" {
		dataDir = dir
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dataDir)
	v.AddConfigPath(".")

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("sync_interval", def.SyncInterval)
	v.SetDefault("replica_sync_interval", def.ReplicaSyncInterval)
	v.SetDefault("verbose", false)

	v.BindEnv("data_dir", "MOUNTAINS_DATA_DIR")
	v.BindEnv("turso_url", "TURSO_DATABASE_URL")
	v.BindEnv("turso_token", "TURSO_AUTH_TOKEN")
	v.BindEnv("verbose", "MOUNTAINS_VERBOSE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = def.SyncInterval
	}
	if cfg.ReplicaSyncInterval <= 0 {
		cfg.ReplicaSyncInterval = def.ReplicaSyncInterval
	}
	return &cfg, nil
}

// CloudConfigured reports whether both replica credentials are present.
func (c *Config) CloudConfigured() bool {
	return c.TursoURL != "" && c.TursoToken != ""
}

// Path joins name onto the data directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

// WriteStarterFile writes a commented config.toml with the current
// settings so users can discover the knobs. Existing files are left alone.
func (c *Config) WriteStarterFile() error {
	path := c.Path(ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprint(f, "# Mountains settings. Environment variables override these values.\n\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// Durations are written as strings so the file stays readable, and
	// credentials stay out so the file is safe to commit to dotfile repos.
	starter := struct {
		DataDir             string `toml:"data_dir"`
		SyncInterval        string `toml:"sync_interval"`
		ReplicaSyncInterval string `toml:"replica_sync_interval"`
		Verbose             bool   `toml:"verbose"`
	}{
		DataDir:             c.DataDir,
		SyncInterval:        c.SyncInterval.String(),
		ReplicaSyncInterval: c.ReplicaSyncInterval.String(),
		Verbose:             c.Verbose,
	}
	if err := toml.NewEncoder(f).Encode(starter); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
)

// schemaStatements is the full DDL, applied one statement at a time. Every
// statement is IF NOT EXISTS so initialization can re-run against a live
// store without error or data loss. Table and column names are a contract:
// other tools read these files directly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS daily_logs (
		date TEXT PRIMARY KEY,
		weight REAL,
		waist REAL,
		notes TEXT,
		miles_covered REAL,
		elevation_gain INTEGER,
		strength_mobility TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS food_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		notes TEXT,
		FOREIGN KEY (date) REFERENCES daily_logs(date) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS sokay_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		entry_text TEXT NOT NULL,
		FOREIGN KEY (date) REFERENCES daily_logs(date) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(date)`,
	`CREATE INDEX IF NOT EXISTS idx_sokay_entries_date ON sokay_entries(date)`,
}

// InitSchema ensures the three tables and their date indexes exist.
func (s *Store) InitSchema() error {
	return s.InitSchemaContext(context.Background())
}

// InitSchemaContext is InitSchema with context support.
func (s *Store) InitSchemaContext(ctx context.Context) error {
	s.mu.RLock()
	db := s.db
	s.mu.RUnlock()
	if db == nil {
		return fmt.Errorf("store is closed")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

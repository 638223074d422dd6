package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
)

// SaveDay persists one complete day record: the daily_logs row plus a full
// rewrite of both child collections, in a single transaction. After a
// successful commit it opportunistically pushes to the remote replica;
// push failures never surface as write failures because the local commit
// already made the data durable.
func (s *Store) SaveDay(rec *journal.DayRecord) error {
	return s.SaveDayContext(context.Background(), rec)
}

// SaveDayContext is SaveDay with context support.
func (s *Store) SaveDayContext(ctx context.Context, rec *journal.DayRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid day record: %w", err)
	}
	if err := s.saveDay(ctx, rec); err != nil {
		return err
	}
	s.maybeSync()
	return nil
}

func (s *Store) saveDay(ctx context.Context, rec *journal.DayRecord) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("store is closed")
	}

	date := journal.FormatDate(rec.Date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_logs
			(date, weight, waist, notes, miles_covered, elevation_gain, strength_mobility)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		date,
		nullFloat(rec.Weight),
		nullFloat(rec.Waist),
		nullString(rec.Notes),
		nullFloat(rec.Miles),
		nullInt(rec.Elevation),
		nullString(rec.Strength),
	); err != nil {
		return fmt.Errorf("failed to upsert daily log %s: %w", date, err)
	}

	// Children are always a full replace: delete everything for the date,
	// then re-insert the current in-memory snapshot in order.
	if _, err := tx.ExecContext(ctx, `DELETE FROM food_entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to clear food entries for %s: %w", date, err)
	}
	for _, f := range rec.Food {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO food_entries (date, name, notes) VALUES (?, ?, ?)`,
			date, f.Name, nullString(f.Notes),
		); err != nil {
			return fmt.Errorf("failed to insert food entry for %s: %w", date, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sokay_entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to clear sokay entries for %s: %w", date, err)
	}
	for _, entry := range rec.Sokay {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sokay_entries (date, entry_text) VALUES (?, ?)`,
			date, entry,
		); err != nil {
			return fmt.Errorf("failed to insert sokay entry for %s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily log %s: %w", date, err)
	}
	return nil
}

// LoadAll reads every day record, newest first, with both child collections
// in insertion order. An empty store yields an empty slice.
func (s *Store) LoadAll() ([]*journal.DayRecord, error) {
	return s.LoadAllContext(context.Background())
}

// LoadAllContext is LoadAll with context support.
func (s *Store) LoadAllContext(ctx context.Context) ([]*journal.DayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("store is closed")
	}

	recs, err := s.loadParents(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		date := journal.FormatDate(rec.Date)
		if rec.Food, err = s.loadFood(ctx, date); err != nil {
			return nil, err
		}
		if rec.Sokay, err = s.loadSokay(ctx, date); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *Store) loadParents(ctx context.Context) ([]*journal.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, weight, waist, notes, miles_covered, elevation_gain, strength_mobility
		FROM daily_logs
		ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer rows.Close()

	recs := []*journal.DayRecord{}
	for rows.Next() {
		var (
			dateStr              string
			weight, waist, miles sql.NullFloat64
			elevation            sql.NullInt64
			notes, strength      sql.NullString
		)
		if err := rows.Scan(&dateStr, &weight, &waist, &notes, &miles, &elevation, &strength); err != nil {
			return nil, fmt.Errorf("failed to scan daily log row: %w", err)
		}

		// An unparseable stored date means the file cannot be trusted;
		// fail the whole load rather than skip the row.
		date, err := journal.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt daily log row: %w", err)
		}

		recs = append(recs, &journal.DayRecord{
			Date:      date,
			Weight:    floatPtr(weight),
			Waist:     floatPtr(waist),
			Notes:     stringPtr(notes),
			Miles:     floatPtr(miles),
			Elevation: intPtr(elevation),
			Strength:  stringPtr(strength),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily logs: %w", err)
	}
	return recs, nil
}

func (s *Store) loadFood(ctx context.Context, date string) ([]journal.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, notes FROM food_entries WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query food entries for %s: %w", date, err)
	}
	defer rows.Close()

	var entries []journal.FoodEntry
	for rows.Next() {
		var name string
		var notes sql.NullString
		if err := rows.Scan(&name, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan food entry for %s: %w", date, err)
		}
		entries = append(entries, journal.FoodEntry{Name: name, Notes: stringPtr(notes)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read food entries for %s: %w", date, err)
	}
	return entries, nil
}

func (s *Store) loadSokay(ctx context.Context, date string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_text FROM sokay_entries WHERE date = ? ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query sokay entries for %s: %w", date, err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var entry string
		if err := rows.Scan(&entry); err != nil {
			return nil, fmt.Errorf("failed to scan sokay entry for %s: %w", date, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sokay entries for %s: %w", date, err)
	}
	return entries, nil
}

// DeleteDay removes a day record; the schema's ON DELETE CASCADE removes
// both child collections with it. Like SaveDay, a successful commit is
// followed by an opportunistic push.
func (s *Store) DeleteDay(date time.Time) error {
	return s.DeleteDayContext(context.Background(), date)
}

// DeleteDayContext is DeleteDay with context support.
func (s *Store) DeleteDayContext(ctx context.Context, date time.Time) error {
	if err := s.deleteDay(ctx, journal.FormatDate(date)); err != nil {
		return err
	}
	s.maybeSync()
	return nil
}

func (s *Store) deleteDay(ctx context.Context, date string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("store is closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_logs WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete daily log %s: %w", date, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of %s: %w", date, err)
	}
	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

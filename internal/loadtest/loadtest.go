// Package loadtest provides load testing utilities for the journal store.
//
// This package simulates the interactive workload at a scale far past any
// real training history, validating that full-journal loads and day saves
// stay fast enough that the queue between the UI and the store never
// visibly backs up.
package loadtest

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/papadavis47/mountains/internal/journal"
	"github.com/papadavis47/mountains/internal/store"
)

// TestStore represents a populated store for load testing.
type TestStore struct {
	Store     *store.Store
	Dates     []time.Time
	RunDates  []time.Time
	RestDates []time.Time
	TotalDays int
	RunPct    float64
}

// LatencyStats captures performance metrics from load tests.
type LatencyStats struct {
	Min       time.Duration
	Max       time.Duration
	Mean      time.Duration
	P50       time.Duration // Median
	P95       time.Duration
	P99       time.Duration
	TotalOps  int
	Errors    int
	Durations []time.Duration
}

// CreateTestStore creates a store in dir populated with numDays of
// synthetic history walking back from today.
//
// The data is shaped like a real log rather than uniform noise:
//   - Weight drifts on a slow random walk instead of jumping around
//   - runPct of the days carry miles and elevation, the rest are rest days
//   - Food lists, sokay entries, and free-text fields appear at the
//     uneven rates a human produces them
//
// Generation is seeded, so two stores built with the same arguments hold
// identical data.
func CreateTestStore(dir string, numDays int, runPct float64) (*TestStore, error) {
	s, err := store.Open(store.DefaultConfig(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Widen the pool for the concurrent-reader runs.
	s.RawDB().SetMaxOpenConns(64)
	s.RawDB().SetMaxIdleConns(16)
	s.RawDB().SetConnMaxLifetime(10 * time.Minute)

	ts := &TestStore{
		Store:     s,
		Dates:     make([]time.Time, 0, numDays),
		TotalDays: numDays,
		RunPct:    runPct,
	}

	for _, rec := range generateDays(numDays, runPct) {
		if err := s.SaveDay(rec); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to insert day %s: %w", journal.FormatDate(rec.Date), err)
		}
		ts.Dates = append(ts.Dates, rec.Date)
		if rec.Miles != nil {
			ts.RunDates = append(ts.RunDates, rec.Date)
		} else {
			ts.RestDates = append(ts.RestDates, rec.Date)
		}
	}

	// Round-trip check: a populated store that cannot read itself back is
	// useless as a fixture.
	recs, err := s.LoadAll()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to load populated store: %w", err)
	}
	if len(recs) != numDays {
		_ = s.Close()
		return nil, fmt.Errorf("populated %d days but loaded %d", numDays, len(recs))
	}

	return ts, nil
}

// Close closes the underlying store.
func (ts *TestStore) Close() error {
	if ts.Store != nil {
		return ts.Store.Close()
	}
	return nil
}

// RunConcurrentLoads simulates N concurrent readers each performing
// loadsPerReader full-journal loads, recording latency for each.
func (ts *TestStore) RunConcurrentLoads(numReaders, loadsPerReader int) (*LatencyStats, error) {
	var wg sync.WaitGroup

	resultsChan := make(chan []time.Duration, numReaders)
	errorsChan := make(chan error, numReaders)

	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func(readerID int) {
			defer wg.Done()

			durations := make([]time.Duration, 0, loadsPerReader)
			ctx := context.Background()

			for j := 0; j < loadsPerReader; j++ {
				start := time.Now()
				_, err := ts.Store.LoadAllContext(ctx)
				durations = append(durations, time.Since(start))

				if err != nil {
					errorsChan <- fmt.Errorf("reader %d load %d failed: %w", readerID, j, err)
					return
				}
			}

			resultsChan <- durations
		}(i)
	}

	wg.Wait()
	close(resultsChan)
	close(errorsChan)

	errorCount := 0
	for err := range errorsChan {
		if err != nil {
			errorCount++
			fmt.Printf("Error: %v\n", err)
		}
	}

	var allDurations []time.Duration
	for durations := range resultsChan {
		allDurations = append(allDurations, durations...)
	}

	if len(allDurations) == 0 {
		return nil, fmt.Errorf("no successful loads completed")
	}

	stats := computeLatencyStats(allDurations)
	stats.Errors = errorCount
	return stats, nil
}

// RunSaveSeries performs count sequential day saves, cycling through the
// populated dates with mutated running fields, and records the latency of
// each. Saves are sequential because production writes are too: the write
// queue serializes them through a single goroutine.
func (ts *TestStore) RunSaveSeries(count int) (*LatencyStats, error) {
	if len(ts.Dates) == 0 {
		return nil, fmt.Errorf("store has no days to save")
	}

	rng := rand.New(rand.NewSource(7))
	durations := make([]time.Duration, 0, count)

	for i := 0; i < count; i++ {
		date := ts.Dates[i%len(ts.Dates)]
		rec := journal.NewDayRecord(date)
		miles := float64(rng.Intn(120)+10) / 10
		elevation := int64(miles*120) + int64(rng.Intn(400))
		rec.Miles = &miles
		rec.Elevation = &elevation
		rec.AddFood(fmt.Sprintf("refuel snack %d", i))

		start := time.Now()
		err := ts.Store.SaveDay(rec)
		durations = append(durations, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("save %d for %s failed: %w", i, journal.FormatDate(date), err)
		}
	}

	return computeLatencyStats(durations), nil
}

// VerifyConcurrentAccess runs readers against a live writer for the given
// duration, checking that every load returns well-formed, correctly
// ordered records while one day is being rewritten under them.
func (ts *TestStore) VerifyConcurrentAccess(numReaders int, duration time.Duration) error {
	if len(ts.Dates) == 0 {
		return fmt.Errorf("store has no days to verify")
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var wg sync.WaitGroup
	errorsChan := make(chan error, numReaders+1)

	// One writer flips the newest day's mileage, mirroring the production
	// single-writer queue.
	wg.Add(1)
	go func() {
		defer wg.Done()
		target := ts.Dates[0]
		miles := 5.0
		for {
			select {
			case <-ctx.Done():
				return
			default:
				rec := journal.NewDayRecord(target)
				rec.Miles = &miles
				if err := ts.Store.SaveDayContext(ctx, rec); err != nil && ctx.Err() == nil {
					errorsChan <- fmt.Errorf("writer save failed: %w", err)
					return
				}
				miles = 15 - miles
				time.Sleep(time.Millisecond)
			}
		}
	}()

	for i := 0; i < numReaders; i++ {
		wg.Add(1)
		go func(readerID int) {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				default:
					recs, err := ts.Store.LoadAllContext(ctx)
					if err != nil && ctx.Err() == nil {
						errorsChan <- fmt.Errorf("reader %d load failed: %w", readerID, err)
						return
					}

					var prev time.Time
					for _, rec := range recs {
						if err := rec.Validate(); err != nil {
							errorsChan <- fmt.Errorf("reader %d loaded invalid record: %w", readerID, err)
							return
						}
						if !prev.IsZero() && !rec.Date.Before(prev) {
							errorsChan <- fmt.Errorf("reader %d saw dates out of order: %s then %s",
								readerID, journal.FormatDate(prev), journal.FormatDate(rec.Date))
							return
						}
						prev = rec.Date
					}

					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}

	wg.Wait()
	close(errorsChan)

	for err := range errorsChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// GetStats returns statistics about the populated store.
func (ts *TestStore) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"total_days":  ts.TotalDays,
		"run_days":    len(ts.RunDates),
		"rest_days":   len(ts.RestDates),
		"run_percent": float64(len(ts.RunDates)) / float64(ts.TotalDays) * 100,
	}
}

// generateDays creates synthetic day records walking back from today.
func generateDays(count int, runPct float64) []*journal.DayRecord {
	foods := []string{
		"oatmeal with berries", "chicken and rice", "greek yogurt",
		"banana", "trail mix", "salmon and greens", "pasta", "eggs and toast",
		"burrito bowl", "apple with peanut butter",
	}
	sokays := []string{"soda", "candy bar", "late night chips", "second dessert"}
	strengths := []string{
		"pullups 3x8, pushups 3x20",
		"squats 5x5, lunges 3x12",
		"core circuit, 20 min",
		"hip mobility and calf raises",
	}

	// Seeded so every run populates the same history.
	rng := rand.New(rand.NewSource(42))
	base := journal.Today()
	weight := 185.0

	recs := make([]*journal.DayRecord, count)
	for i := 0; i < count; i++ {
		rec := journal.NewDayRecord(base.AddDate(0, 0, -i))

		// Slow random walk, one decimal, trending nowhere in particular.
		weight += float64(rng.Intn(11)-5) / 10
		w := float64(int(weight*10)) / 10
		rec.Weight = &w

		if rng.Intn(4) == 0 {
			waist := 33 + float64(rng.Intn(30))/10
			rec.Waist = &waist
		}

		if rng.Float64() < runPct {
			miles := float64(rng.Intn(100)+20) / 10
			elevation := int64(miles*110) + int64(rng.Intn(600))
			rec.Miles = &miles
			rec.Elevation = &elevation
		}

		for j := rng.Intn(4); j > 0; j-- {
			rec.AddFood(foods[rng.Intn(len(foods))])
		}
		if rng.Intn(3) == 0 {
			rec.AddSokay(sokays[rng.Intn(len(sokays))])
		}
		if rng.Intn(3) == 0 {
			rec.Strength = &strengths[rng.Intn(len(strengths))]
		}
		if rng.Intn(5) == 0 {
			notes := fmt.Sprintf("day %d of the block, legs feeling it", i)
			rec.Notes = &notes
		}

		recs[i] = rec
	}
	return recs
}

// computeLatencyStats calculates statistics from a slice of durations.
func computeLatencyStats(durations []time.Duration) *LatencyStats {
	if len(durations) == 0 {
		return &LatencyStats{}
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	mean := sum / time.Duration(len(durations))

	p50 := sorted[len(sorted)*50/100]
	p95 := sorted[len(sorted)*95/100]
	p99 := sorted[len(sorted)*99/100]

	return &LatencyStats{
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		Mean:      mean,
		P50:       p50,
		P95:       p95,
		P99:       p99,
		TotalOps:  len(durations),
		Durations: sorted,
	}
}

// PrintStats formats and prints latency statistics.
func (s *LatencyStats) PrintStats() {
	fmt.Printf("Latency Statistics:\n")
	fmt.Printf("  Total Ops: %d\n", s.TotalOps)
	fmt.Printf("  Errors:    %d\n", s.Errors)
	fmt.Printf("  Min:       %v\n", s.Min)
	fmt.Printf("  P50:       %v\n", s.P50)
	fmt.Printf("  Mean:      %v\n", s.Mean)
	fmt.Printf("  P95:       %v\n", s.P95)
	fmt.Printf("  P99:       %v\n", s.P99)
	fmt.Printf("  Max:       %v\n", s.Max)
}

// Package store keeps benchmark reports in a SQLite file so algorithm
// comparisons can be tracked across batches.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Garsondee/chase-ai/internal/bench"
)

// ErrNotInitialized is returned when the store is used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Store is a SQLite-backed record of benchmark reports.
type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// RunRow is one stored batch.
type RunRow struct {
	ID       string
	Started  time.Time
	Elapsed  time.Duration
	Runs     int
	SeedBase int64
	SeedStep int64
	MaxSteps int
}

// AlgorithmSummary totals every stored game of one algorithm.
type AlgorithmSummary struct {
	Algorithm string
	Games     int
	Wins      int
	Losses    int
	Timeouts  int
	AvgScore  float64
	AvgSteps  float64
}

// New returns a store for the database file at path. Call Init before use.
func New(path string) *Store {
	return &Store{path: path}
}

// Init opens the database and creates the tables. Calling it twice is a no-op.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveReport writes a report with its per-algorithm results and games.
// Saving the same report ID again replaces it.
func (s *Store) SaveReport(ctx context.Context, rep bench.Report) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started, elapsed_us, runs, seed_base, seed_step, max_steps)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started = excluded.started,
			elapsed_us = excluded.elapsed_us,
			runs = excluded.runs,
			seed_base = excluded.seed_base,
			seed_step = excluded.seed_step,
			max_steps = excluded.max_steps
	`, rep.ID, rep.Started.UTC().Format(time.RFC3339Nano), rep.Elapsed.Microseconds(),
		rep.Options.Runs, rep.Options.SeedBase, rep.Options.SeedStep, rep.MaxSteps)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rep.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE run_id = ?`, rep.ID); err != nil {
		return err
	}
	for _, r := range rep.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (run_id, algorithm, wins, losses, timeouts, avg_score, score_sd, avg_steps, avg_time_us)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, algorithm) DO UPDATE SET
				wins = excluded.wins,
				losses = excluded.losses,
				timeouts = excluded.timeouts,
				avg_score = excluded.avg_score,
				score_sd = excluded.score_sd,
				avg_steps = excluded.avg_steps,
				avg_time_us = excluded.avg_time_us
		`, rep.ID, r.Algorithm, r.Wins, r.Losses, r.Timeouts, r.AvgScore, r.ScoreStdDev, r.AvgSteps,
			r.AvgTime.Microseconds())
		if err != nil {
			return fmt.Errorf("save result %s/%s: %w", rep.ID, r.Algorithm, err)
		}
		for _, g := range r.Games {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO games (run_id, algorithm, seed, outcome, score, steps, visited, duration_us)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, rep.ID, r.Algorithm, g.Seed, g.Outcome.String(), g.Score, g.Steps, g.Visited,
				g.Duration.Microseconds())
			if err != nil {
				return fmt.Errorf("save game %s/%s seed %d: %w", rep.ID, r.Algorithm, g.Seed, err)
			}
		}
	}
	return tx.Commit()
}

// ListRuns returns stored batches, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRow, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, started, elapsed_us, runs, seed_base, seed_step, max_steps
		FROM runs ORDER BY started DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var (
			r       RunRow
			started string
			elapsed int64
		)
		if err := rows.Scan(&r.ID, &started, &elapsed, &r.Runs, &r.SeedBase, &r.SeedStep, &r.MaxSteps); err != nil {
			return nil, err
		}
		r.Started, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("run %s: bad start time: %w", r.ID, err)
		}
		r.Elapsed = time.Duration(elapsed) * time.Microsecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Results returns the per-algorithm results of one batch without its games.
// ok is false when the batch is unknown.
func (s *Store) Results(ctx context.Context, runID string) (results []bench.Result, ok bool, err error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT algorithm, wins, losses, timeouts, avg_score, score_sd, avg_steps, avg_time_us
		FROM results WHERE run_id = ? ORDER BY rowid
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r     bench.Result
			avgUS int64
		)
		if err := rows.Scan(&r.Algorithm, &r.Wins, &r.Losses, &r.Timeouts, &r.AvgScore, &r.ScoreStdDev, &r.AvgSteps, &avgUS); err != nil {
			return nil, false, err
		}
		r.AvgTime = time.Duration(avgUS) * time.Microsecond
		results = append(results, r)
	}
	return results, true, rows.Err()
}

// SummaryByAlgorithm totals every stored game per algorithm.
func (s *Store) SummaryByAlgorithm(ctx context.Context) ([]AlgorithmSummary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT algorithm,
			COUNT(*),
			SUM(CASE WHEN outcome = 'survived' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'captured' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'stuck' THEN 1 ELSE 0 END),
			AVG(score),
			AVG(steps)
		FROM games GROUP BY algorithm ORDER BY algorithm
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AlgorithmSummary
	for rows.Next() {
		var a AlgorithmSummary
		if err := rows.Scan(&a.Algorithm, &a.Games, &a.Wins, &a.Losses, &a.Timeouts, &a.AvgScore, &a.AvgSteps); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started TEXT NOT NULL,
			elapsed_us INTEGER NOT NULL,
			runs INTEGER NOT NULL,
			seed_base INTEGER NOT NULL,
			seed_step INTEGER NOT NULL,
			max_steps INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			wins INTEGER NOT NULL,
			losses INTEGER NOT NULL,
			timeouts INTEGER NOT NULL,
			avg_score REAL NOT NULL,
			score_sd REAL NOT NULL,
			avg_steps REAL NOT NULL,
			avg_time_us INTEGER NOT NULL,
			PRIMARY KEY (run_id, algorithm)
		);
		CREATE TABLE IF NOT EXISTS games (
			run_id TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			visited INTEGER NOT NULL,
			duration_us INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS games_algorithm ON games (algorithm);
	`)
	return err
}

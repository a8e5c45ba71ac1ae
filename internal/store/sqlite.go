// Package store records completed runs and their per-step counts in SQLite.
// It keeps results for later comparison; it never restores a grid.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"sir-ca/internal/runner"
	"sir-ca/internal/sims/sir"
)

// ErrRunNotFound is returned when a run id is not in the database.
var ErrRunNotFound = errors.New("store: run not found")

// RunMeta describes the configuration a history was produced with.
type RunMeta struct {
	Label  string
	Config sir.Config
}

// RunSummary is a stored run without its step rows.
type RunSummary struct {
	ID           int64
	CreatedAt    time.Time
	Label        string
	Config       sir.Config
	Steps        int
	PeakInfected int
	PeakStep     int
}

// SQLiteStore persists run histories.
type SQLiteStore struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun stores a history and returns the new run id.
func (s *SQLiteStore) SaveRun(ctx context.Context, meta RunMeta, h runner.History) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	cfg := meta.Config
	p := cfg.Params
	peakStep, peak := h.PeakInfected()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, label, width, height, seed, initial_infected,
		                  pv, ps, pc, pd, po, k, steps, peak_infected, peak_step)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano), meta.Label,
		cfg.Width, cfg.Height, cfg.Seed, cfg.InitialInfected,
		p.Pv, p.Ps, p.Pc, p.Pd, p.Po, p.K,
		h.Len(), peak, peakStep)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_steps (run_id, step, susceptible, infected, recovered)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare step insert: %w", err)
	}
	defer stmt.Close()
	for i := 0; i < h.Len(); i++ {
		if _, err := stmt.ExecContext(ctx, id, i, h.Susceptible[i], h.Infected[i], h.Recovered[i]); err != nil {
			return 0, fmt.Errorf("insert step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns returns every stored run, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, label, width, height, seed, initial_infected,
		       pv, ps, pc, pd, po, k, steps, peak_infected, peak_step
		FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r       RunSummary
			created string
		)
		c := &r.Config
		if err := rows.Scan(&r.ID, &created, &r.Label, &c.Width, &c.Height, &c.Seed, &c.InitialInfected,
			&c.Params.Pv, &c.Params.Ps, &c.Params.Pc, &c.Params.Pd, &c.Params.Po, &c.Params.K,
			&r.Steps, &r.PeakInfected, &r.PeakStep); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadHistory returns the per-step counts of a stored run.
func (s *SQLiteStore) LoadHistory(ctx context.Context, id int64) (runner.History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var steps int
	err := s.db.QueryRowContext(ctx, `SELECT steps FROM runs WHERE id = ?`, id).Scan(&steps)
	if errors.Is(err, sql.ErrNoRows) {
		return runner.History{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return runner.History{}, fmt.Errorf("query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT susceptible, infected, recovered FROM run_steps
		WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return runner.History{}, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	h := runner.NewHistory(steps)
	for rows.Next() {
		var sus, inf, rec int
		if err := rows.Scan(&sus, &inf, &rec); err != nil {
			return runner.History{}, fmt.Errorf("scan step: %w", err)
		}
		h.Append(sus, inf, rec)
	}
	return h, rows.Err()
}

// Sink returns a runner sink that saves the completed history under meta.
func (s *SQLiteStore) Sink(ctx context.Context, meta RunMeta) runner.Sink {
	return runner.SinkFunc(func(h runner.History) error {
		_, err := s.SaveRun(ctx, meta, h)
		return err
	})
}

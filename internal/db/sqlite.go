package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"benchsweep/internal/benchmark"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned by LoadRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the history database and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		executable TEXT NOT NULL,
		aborted INTEGER NOT NULL DEFAULT 0,
		snapshot TEXT NOT NULL DEFAULT '',
		hostname TEXT NOT NULL DEFAULT '',
		os TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL DEFAULT '',
		arch TEXT NOT NULL DEFAULT '',
		cpu_model TEXT NOT NULL DEFAULT '',
		logical_cpus INTEGER NOT NULL DEFAULT 0,
		memory_mb INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS run_params (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		ord INTEGER NOT NULL,
		param INTEGER NOT NULL,
		PRIMARY KEY (run_id, param)
	);
	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		param INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		micros REAL NOT NULL,
		PRIMARY KEY (run_id, param, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun records a sweep and all of its samples in one transaction. A new ID
// is generated when rec.ID is empty. The stored ID is returned.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec benchmark.RunRecord, rs *benchmark.ResultSet) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	h := rec.Host
	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, finished_at, executable, aborted, snapshot, hostname, os, platform, arch, cpu_model, logical_cpus, memory_mb)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UTC(), rec.FinishedAt.UTC(), rec.Executable, rec.Aborted, rec.Snapshot,
		h.Hostname, h.OS, h.Platform, h.Arch, h.CPUModel, h.LogicalCPUs, h.MemoryMB)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	paramStmt, err := tx.PrepareContext(ctx, `INSERT INTO run_params (run_id, ord, param) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer paramStmt.Close()

	sampleStmt, err := tx.PrepareContext(ctx, `INSERT INTO samples (run_id, param, seq, micros) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer sampleStmt.Close()

	if rs != nil {
		for ord, run := range rs.Runs() {
			if _, err := paramStmt.ExecContext(ctx, rec.ID, ord, run.Param); err != nil {
				return "", fmt.Errorf("failed to insert parameter %d: %w", run.Param, err)
			}
			for seq, us := range run.Samples {
				if _, err := sampleStmt.ExecContext(ctx, rec.ID, run.Param, seq, us); err != nil {
					return "", fmt.Errorf("failed to insert sample for parameter %d: %w", run.Param, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return rec.ID, nil
}

// ListRuns returns the most recent runs, newest first
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT r.id, r.started_at, r.finished_at, r.executable, r.aborted, r.snapshot, r.hostname,
		(SELECT COUNT(*) FROM run_params p WHERE p.run_id = r.id),
		(SELECT COUNT(*) FROM samples m WHERE m.run_id = r.id)
	FROM runs r
	ORDER BY r.started_at DESC, r.rowid DESC
	LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Executable, &r.Aborted,
			&r.Snapshot, &r.Hostname, &r.Params, &r.SampleCount); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// LoadRun returns a stored run and its samples in the order they were recorded.
func (s *SQLiteStore) LoadRun(ctx context.Context, id string) (*benchmark.RunRecord, *benchmark.ResultSet, error) {
	rec := &benchmark.RunRecord{ID: id}
	var started, finished time.Time
	err := s.db.QueryRowContext(ctx, `SELECT started_at, finished_at, executable, aborted, snapshot,
		hostname, os, platform, arch, cpu_model, logical_cpus, memory_mb
		FROM runs WHERE id = ?`, id).Scan(&started, &finished, &rec.Executable, &rec.Aborted, &rec.Snapshot,
		&rec.Host.Hostname, &rec.Host.OS, &rec.Host.Platform, &rec.Host.Arch, &rec.Host.CPUModel,
		&rec.Host.LogicalCPUs, &rec.Host.MemoryMB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, err
	}
	rec.StartedAt = started
	rec.FinishedAt = finished

	rs := benchmark.NewResultSet()

	params, err := s.db.QueryContext(ctx, `SELECT param FROM run_params WHERE run_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, nil, err
	}
	defer params.Close()
	for params.Next() {
		var p int
		if err := params.Scan(&p); err != nil {
			return nil, nil, err
		}
		rs.Begin(p)
	}
	if err := params.Err(); err != nil {
		return nil, nil, err
	}

	samples, err := s.db.QueryContext(ctx, `SELECT param, micros FROM samples WHERE run_id = ? ORDER BY param, seq`, id)
	if err != nil {
		return nil, nil, err
	}
	defer samples.Close()
	for samples.Next() {
		var (
			p  int
			us float64
		)
		if err := samples.Scan(&p, &us); err != nil {
			return nil, nil, err
		}
		rs.Append(p, us)
	}
	if err := samples.Err(); err != nil {
		return nil, nil, err
	}

	return rec, rs, nil
}

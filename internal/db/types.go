package db

import (
	"context"
	"time"

	"benchsweep/internal/benchmark"
)

// RunSummary is one row of the run history.
type RunSummary struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Executable  string    `json:"executable"`
	Aborted     bool      `json:"aborted"`
	Snapshot    string    `json:"snapshot"`
	Hostname    string    `json:"hostname"`
	Params      int       `json:"params"`
	SampleCount int       `json:"sample_count"`
}

// Store interface defines the methods for the run history
type Store interface {
	Close() error
	SaveRun(ctx context.Context, rec benchmark.RunRecord, rs *benchmark.ResultSet) (string, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	LoadRun(ctx context.Context, id string) (*benchmark.RunRecord, *benchmark.ResultSet, error)
}

// Package store persists batch mapping runs. Persistence is a concern
// of the batch collaborator: the engine itself never touches a store.
package store

import (
	"context"
	"time"
)

// Store is the interface for persisting and querying mapping runs.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	SaveResult(ctx context.Context, res Result) error
	ResultsByRun(ctx context.Context, runID string) ([]Result, error)
	Runs(ctx context.Context) ([]Run, error)
}

// Run records one batch execution.
type Run struct {
	ID           string // ULID
	StartedAt    time.Time
	TaxonomyPath string
	Cases        int
}

// Result is one persisted mapping outcome.
type Result struct {
	RunID      string
	CaseID     int
	UserTags   []string
	Snippet    string
	Mapped     string
	Path       []string // nil when unmapped
	Confidence float64
	Reasoning  string
	TopScores  map[string]float64
}

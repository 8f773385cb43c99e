// Package memstore is an in-memory store.Store implementation for tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]store.Run
	results map[string][]store.Result // run ID → results
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		runs:    make(map[string]store.Run),
		results: make(map[string][]store.Result),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun records a batch run, keyed by its ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("memstore: run without ID: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
	return nil
}

// SaveResult appends one result to its run.
func (s *Store) SaveResult(ctx context.Context, res store.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[res.RunID]; !ok {
		return fmt.Errorf("memstore: run %s: %w", res.RunID, internalerr.ErrNotFound)
	}
	s.results[res.RunID] = append(s.results[res.RunID], res)
	return nil
}

// ResultsByRun returns a run's results ordered by case ID.
func (s *Store) ResultsByRun(ctx context.Context, runID string) ([]store.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]store.Result, len(s.results[runID]))
	copy(results, s.results[runID])
	sort.Slice(results, func(i, j int) bool {
		return results[i].CaseID < results[j].CaseID
	})
	return results, nil
}

// Runs returns all recorded runs ordered by ID (ULIDs sort by time).
func (s *Store) Runs(ctx context.Context) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

// Package sqlite implements store.Store on a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	taxonomy_path TEXT,
	cases INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs(id),
	case_id INTEGER NOT NULL,
	user_tags TEXT,
	snippet TEXT,
	mapped TEXT NOT NULL,
	path TEXT,
	confidence REAL NOT NULL,
	reasoning TEXT,
	top_scores TEXT,
	PRIMARY KEY (run_id, case_id)
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a batch run record.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, started_at, taxonomy_path, cases)
VALUES (?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.TaxonomyPath, r.Cases)
	return err
}

// SaveResult inserts or replaces one mapping result.
func (s *sqliteStore) SaveResult(ctx context.Context, res store.Result) error {
	tags, err := json.Marshal(res.UserTags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var path []byte
	if res.Path != nil {
		path, err = json.Marshal(res.Path)
		if err != nil {
			return fmt.Errorf("marshal path: %w", err)
		}
	}

	scores, err := json.Marshal(res.TopScores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO results
(run_id, case_id, user_tags, snippet, mapped, path, confidence, reasoning, top_scores)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.CaseID, string(tags), res.Snippet, res.Mapped,
		nullableString(path), res.Confidence, res.Reasoning, string(scores))
	return err
}

// ResultsByRun returns a run's results ordered by case ID.
func (s *sqliteStore) ResultsByRun(ctx context.Context, runID string) ([]store.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT run_id, case_id, user_tags, snippet, mapped, path, confidence, reasoning, top_scores
FROM results WHERE run_id = ? ORDER BY case_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []store.Result
	for rows.Next() {
		var res store.Result
		var tags, scores string
		var path sql.NullString
		if err := rows.Scan(&res.RunID, &res.CaseID, &tags, &res.Snippet, &res.Mapped,
			&path, &res.Confidence, &res.Reasoning, &scores); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tags), &res.UserTags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		if path.Valid {
			if err := json.Unmarshal([]byte(path.String), &res.Path); err != nil {
				return nil, fmt.Errorf("unmarshal path: %w", err)
			}
		}
		if err := json.Unmarshal([]byte(scores), &res.TopScores); err != nil {
			return nil, fmt.Errorf("unmarshal scores: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Runs returns all recorded runs, oldest first.
func (s *sqliteStore) Runs(ctx context.Context) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, taxonomy_path, cases FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var r store.Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.TaxonomyPath, &r.Cases); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		r.StartedAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func nullableString(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

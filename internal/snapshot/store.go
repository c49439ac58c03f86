// Package snapshot persists the last successfully fetched directory
// payloads in a local SQLite file, so CLI reads can degrade to stale
// data when the board service is unreachable.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
)

// Kind names a persisted collection.
type Kind string

const (
	KindColumns     Kind = "columns"
	KindGroups      Kind = "groups"
	KindLabels      Kind = "labels"
	KindAssignments Kind = "assignments"
	KindArtifacts   Kind = "artifacts"
	KindTasks       Kind = "tasks"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	project_id TEXT NOT NULL,
	kind       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	PRIMARY KEY (project_id, kind)
);
`

// Store wraps the snapshot database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the snapshot store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores payload as the current snapshot for (projectID, kind),
// replacing any previous row.
func (s *Store) Save(ctx context.Context, projectID string, kind Kind, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (project_id, kind, payload, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (project_id, kind) DO UPDATE
		 SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		projectID, string(kind), string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load decodes the snapshot for (projectID, kind) into out and returns
// when it was fetched. ok is false when no snapshot exists.
func (s *Store) Load(ctx context.Context, projectID string, kind Kind, out any) (fetchedAt time.Time, ok bool, err error) {
	var payload, stamp string
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshots WHERE project_id = ? AND kind = ?`,
		projectID, string(kind))
	if err := row.Scan(&payload, &stamp); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, boarderrors.ErrSnapshotCorrupt(s.path, err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return time.Time{}, false, boarderrors.ErrSnapshotCorrupt(s.path, err)
	}
	if parsed, perr := time.Parse(time.RFC3339, stamp); perr == nil {
		fetchedAt = parsed
	}
	return fetchedAt, true, nil
}

// Prune removes all snapshots for a project.
func (s *Store) Prune(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

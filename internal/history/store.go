// Package history keeps a local record of past detection runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Scan is one recorded detection run.
type Scan struct {
	ID        string
	CreatedAt time.Time
	Source    string // file name or "stdin"
	Threshold float64
	Labels    []string
	Probs     []float64
}

// Store wraps the SQLite connection holding the scan log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory history database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    threshold REAL NOT NULL DEFAULT 0.5,
    labels TEXT NOT NULL DEFAULT '[]',
    probs TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at DESC);
`

// Record inserts a scan. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, scan Scan) error {
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}

	labels, err := json.Marshal(scan.Labels)
	if err != nil {
		return fmt.Errorf("marshalling labels: %w", err)
	}
	probs, err := json.Marshal(scan.Probs)
	if err != nil {
		return fmt.Errorf("marshalling probs: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scans (id, created_at, source, threshold, labels, probs) VALUES (?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.CreatedAt.Format(time.RFC3339), scan.Source, scan.Threshold, string(labels), string(probs))
	if err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}
	return nil
}

// Recent returns up to limit scans, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Scan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, threshold, labels, probs FROM scans ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var (
			scan      Scan
			createdAt string
			labels    string
			probs     string
		)
		if err := rows.Scan(&scan.ID, &createdAt, &scan.Source, &scan.Threshold, &labels, &probs); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if scan.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(labels), &scan.Labels); err != nil {
			return nil, fmt.Errorf("parsing labels: %w", err)
		}
		if err := json.Unmarshal([]byte(probs), &scan.Probs); err != nil {
			return nil, fmt.Errorf("parsing probs: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

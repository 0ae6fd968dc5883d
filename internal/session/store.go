package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store is the durable key/value layer under the snapshot lists: one row
// per identity-scoped key, holding the JSON array of that identity's
// snapshots. Corrupt rows degrade to an empty list instead of blocking the
// application.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func NewStore(log *slog.Logger) (*Store, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	return NewStoreWithPath(dbPath, log)
}

func NewStoreWithPath(dbPath string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mythosforge", "sessions.db"), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReadAll returns the snapshot list stored under key. A missing row is an
// empty list; an unparseable row is logged and treated as empty.
func (s *Store) ReadAll(ctx context.Context, key string) ([]Snapshot, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage key %q: %w", key, err)
	}

	var snapshots []Snapshot
	if err := json.Unmarshal([]byte(value), &snapshots); err != nil {
		s.log.Warn("corrupt session storage, treating as empty", "key", key, "err", err)
		return []Snapshot{}, nil
	}
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return snapshots, nil
}

// WriteAll replaces the snapshot list stored under key. The whole list is
// rewritten on every save; at tens of sessions this is well within bounds.
func (s *Store) WriteAll(ctx context.Context, key string, snapshots []Snapshot) error {
	value, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO storage (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("failed to write storage key %q: %w", key, err)
	}
	return nil
}

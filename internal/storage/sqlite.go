// Package storage provides SQLite-based save slots for map snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its save database.
const DefaultPath = "~/.tilequest/saves.db"

// Store manages the SQLite database connection for save slots.
type Store struct {
	db *sql.DB
}

// SnapshotEntry is one saved snapshot. Data is only filled in by the
// lookups that return a single entry.
type SnapshotEntry struct {
	ID        string
	Name      string
	MapIndex  int
	Size      int
	Data      []byte
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			map_index INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name, seq DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores blob in the save slot name. Older snapshots of the
// slot are kept. Returns the ID of the new snapshot.
func (s *Store) SaveSnapshot(name string, mapIndex int, blob []byte) (string, error) {
	if name == "" {
		return "", errors.New("storage: save slot needs a name")
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO snapshots (id, name, map_index, data) VALUES (?, ?, ?, ?)",
		id, name, mapIndex, blob,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the newest snapshot of the slot name, or nil when
// the slot is empty.
func (s *Store) LatestSnapshot(name string) (*SnapshotEntry, error) {
	return s.queryOne(
		`SELECT id, name, map_index, length(data), data, created_at
		 FROM snapshots
		 WHERE name = ?
		 ORDER BY seq DESC
		 LIMIT 1`,
		name,
	)
}

// SnapshotByID returns the snapshot with the given ID, or nil.
func (s *Store) SnapshotByID(id string) (*SnapshotEntry, error) {
	return s.queryOne(
		`SELECT id, name, map_index, length(data), data, created_at
		 FROM snapshots
		 WHERE id = ?`,
		id,
	)
}

func (s *Store) queryOne(query string, args ...any) (*SnapshotEntry, error) {
	var e SnapshotEntry
	var createdAt any
	err := s.db.QueryRow(query, args...).Scan(&e.ID, &e.Name, &e.MapIndex, &e.Size, &e.Data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// ListSnapshots returns every snapshot without its data, newest first.
func (s *Store) ListSnapshots() ([]SnapshotEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, map_index, length(data), created_at
		 FROM snapshots
		 ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var entries []SnapshotEntry
	for rows.Next() {
		var e SnapshotEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.MapIndex, &e.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSnapshots removes every snapshot of the slot name and returns how
// many were removed.
func (s *Store) DeleteSnapshots(name string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", name)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

// parseTime handles the datetime column as either time.Time or string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

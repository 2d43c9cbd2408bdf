package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/record"
	"github.com/marcus/jot/internal/task"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
    position INTEGER PRIMARY KEY,
    record TEXT NOT NULL
);
`

// SQLiteStore keeps one encoded record per row, ordered by position.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not create data directory: %v", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single process owns the file; keep one connection so the schema and
	// every statement see the same database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load decodes every stored record in position order. The first corrupt row
// aborts the load, matching the file backend.
func (s *SQLiteStore) Load() ([]task.Task, error) {
	rows, err := s.conn.Query("SELECT position, record FROM tasks ORDER BY position")
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not query tasks: %v", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var (
			position int
			line     string
		)
		if err := rows.Scan(&position, &line); err != nil {
			return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not read tasks: %v", err)
		}
		t, err := record.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", s.path, position, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not read tasks: %v", err)
	}
	return tasks, nil
}

// Save replaces all rows in a single transaction.
func (s *SQLiteStore) Save(tasks []task.Task) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not begin save: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not clear tasks: %v", err)
	}

	stmt, err := tx.Prepare("INSERT INTO tasks (position, record) VALUES (?, ?)")
	if err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not prepare insert: %v", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(i+1, record.Encode(t)); err != nil {
			return apperr.Wrap(apperr.PersistenceFailure, err, "could not save task %d: %v", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not commit save: %v", err)
	}
	return nil
}

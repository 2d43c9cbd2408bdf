// Package repository loads and saves the whole task list. The default
// backend is a flat file of records, one task per line; a SQLite backend
// stores the same records in a table.
package repository

import (
	"fmt"

	"github.com/marcus/jot/internal/task"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// IsValid reports whether b names a known backend.
func (b Backend) IsValid() bool {
	return b == BackendFile || b == BackendSQLite
}

// Store persists the full task collection. Save always replaces everything
// previously stored; there are no partial updates.
type Store interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
	Location() string
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: file, sqlite)", backend)
	}
}

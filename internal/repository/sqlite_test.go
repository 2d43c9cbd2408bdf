package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/marcus/jot/internal/apperr"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "tasks.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEmpty(t *testing.T) {
	store := openTestSQLite(t)
	tasks, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openTestSQLite(t)
	want := sampleTasks(t)

	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameTasks(t, got, want)

	// A second save replaces rather than appends.
	if err := store.Save(want[:1]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameTasks(t, got, want[:1])
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	want := sampleTasks(t)
	if err := first.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	got, err := second.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameTasks(t, got, want)
}

func TestSQLiteStoreCorruptRow(t *testing.T) {
	store := openTestSQLite(t)
	if _, err := store.conn.Exec("INSERT INTO tasks (position, record) VALUES (1, 'T | 0 | ok'), (2, 'Q | 0 | bad')"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, apperr.ErrUnknownTaskType) {
		t.Fatalf("error = %v, want UnknownTaskType", err)
	}
}

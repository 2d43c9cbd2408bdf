package repository

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/record"
	"github.com/marcus/jot/internal/task"
)

// FileStore keeps tasks in a newline-delimited record file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the file at path. Nothing is touched on
// disk until Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// Load reads every record in the file. A missing file yields an empty list.
// The first undecodable line aborts the load; blank lines are skipped.
func (s *FileStore) Load() ([]task.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []task.Task{}, nil
		}
		return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not open %s: %v", s.path, err)
	}
	defer f.Close()

	tasks := []task.Task{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := record.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, lineNo, err)
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailure, err, "could not read %s: %v", s.path, err)
	}
	return tasks, nil
}

// Save creates the parent directory if needed and overwrites the file with
// one record per task, in order. The write is not atomic.
func (s *FileStore) Save(tasks []task.Task) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not create data directory: %v", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not write %s: %v", s.path, err)
	}

	w := bufio.NewWriter(f)
	for _, t := range tasks {
		if _, err := w.WriteString(record.Encode(t) + "\n"); err != nil {
			f.Close()
			return apperr.Wrap(apperr.PersistenceFailure, err, "could not write %s: %v", s.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not write %s: %v", s.path, err)
	}
	if err := f.Close(); err != nil {
		return apperr.Wrap(apperr.PersistenceFailure, err, "could not write %s: %v", s.path, err)
	}
	return nil
}

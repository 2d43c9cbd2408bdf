package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/session"
	"github.com/marcus/jot/internal/task"
)

// memStore keeps saved tasks in memory.
type memStore struct {
	tasks   []task.Task
	loadErr error
	saveErr error
}

func (s *memStore) Load() ([]task.Task, error) { return s.tasks, s.loadErr }
func (s *memStore) Location() string           { return "memory" }
func (s *memStore) Close() error               { return nil }

func (s *memStore) Save(tasks []task.Task) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.tasks = tasks
	return nil
}

func newTestModel(store *memStore) Model {
	return New(session.Open(store, session.Options{}))
}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func lastLine(m Model) string {
	return ansi.Strip(m.transcript[len(m.transcript)-1])
}

func TestNewShowsGreeting(t *testing.T) {
	m := newTestModel(&memStore{})
	if len(m.transcript) != 1 || m.transcript[0] != "Hello! I'm Jot. What can I do for you?" {
		t.Fatalf("transcript = %q", m.transcript)
	}
}

func TestNewShowsLoadNotice(t *testing.T) {
	m := newTestModel(&memStore{loadErr: apperr.New(apperr.CorruptRecord, "bad line")})
	if len(m.transcript) != 2 || !strings.Contains(lastLine(m), "starting with an empty list") {
		t.Fatalf("transcript = %q", m.transcript)
	}
}

func TestSubmitRunsCommand(t *testing.T) {
	store := &memStore{}
	m := newTestModel(store)

	m, cmd := enter(t, m, "todo buy milk")
	if cmd != nil {
		t.Fatalf("unexpected cmd after todo")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if !strings.HasPrefix(lastLine(m), "Got it. I've added this task:") {
		t.Errorf("reply = %q", lastLine(m))
	}
	if len(store.tasks) != 1 {
		t.Errorf("saved %d tasks, want 1", len(store.tasks))
	}
	if !strings.Contains(ansi.Strip(m.View()), "jot · 1 tasks") {
		t.Errorf("header not updated:\n%s", m.View())
	}
}

func TestSubmitShowsErrors(t *testing.T) {
	m := newTestModel(&memStore{})
	m, _ = enter(t, m, "mark 3")
	if !strings.Contains(lastLine(m), "out of range") {
		t.Errorf("reply = %q", lastLine(m))
	}
	if m.Quitting() {
		t.Error("error should not quit")
	}
}

func TestSubmitWarnsOnSaveFailure(t *testing.T) {
	m := newTestModel(&memStore{saveErr: apperr.New(apperr.PersistenceFailure, "disk full")})
	m, _ = enter(t, m, "todo x")
	if !strings.HasPrefix(lastLine(m), "Warning: disk full") {
		t.Errorf("last line = %q", lastLine(m))
	}
	if m.Session.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Session.Len())
	}
}

func TestByeQuits(t *testing.T) {
	m := newTestModel(&memStore{})
	m, cmd := enter(t, m, "bye")
	if cmd == nil || !m.Quitting() {
		t.Fatal("bye should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd did not produce QuitMsg")
	}
	if lastLine(m) != "Bye. Hope to see you again soon!" {
		t.Errorf("last line = %q", lastLine(m))
	}
}

func TestBlankLineIgnored(t *testing.T) {
	m := newTestModel(&memStore{})
	m, _ = enter(t, m, "   ")
	if len(m.transcript) != 1 || len(m.history) != 0 {
		t.Errorf("blank line changed state: %q %q", m.transcript, m.history)
	}
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(&memStore{})
	m, _ = enter(t, m, "todo a")
	m, _ = enter(t, m, "list")
	m, _ = enter(t, m, "list")

	if len(m.history) != 2 {
		t.Fatalf("history = %q, want duplicates collapsed", m.history)
	}

	up := func(m Model) Model {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		return next.(Model)
	}
	down := func(m Model) Model {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		return next.(Model)
	}

	m = up(m)
	if m.input.Value() != "list" {
		t.Errorf("first up = %q", m.input.Value())
	}
	m = up(m)
	m = up(m)
	if m.input.Value() != "todo a" {
		t.Errorf("oldest = %q", m.input.Value())
	}
	m = down(m)
	m = down(m)
	if m.input.Value() != "" {
		t.Errorf("past newest = %q", m.input.Value())
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(&memStore{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(Model)
	if m.viewport.Width != 40 || m.viewport.Height != 10-chromeHeight {
		t.Errorf("viewport = %dx%d", m.viewport.Width, m.viewport.Height)
	}
	for _, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 40 {
			t.Errorf("line wider than terminal (%d): %q", w, ansi.Strip(line))
		}
	}
}

func TestEscQuits(t *testing.T) {
	m := newTestModel(&memStore{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(Model).Quitting() {
		t.Error("esc should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestHelpFooterListsBindings(t *testing.T) {
	m := newTestModel(&memStore{})
	view := ansi.Strip(m.View())
	for _, want := range []string{"enter run", "history", "esc quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("footer missing %q:\n%s", want, view)
		}
	}
}

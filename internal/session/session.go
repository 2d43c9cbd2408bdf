// Package session runs commands against a task list: it parses a line,
// applies it to the in-memory list and saves the whole list after every
// successful change. It owns no terminal I/O; callers render the Result.
package session

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/logging"
	"github.com/marcus/jot/internal/parser"
	"github.com/marcus/jot/internal/repository"
	"github.com/marcus/jot/internal/task"
	"github.com/marcus/jot/internal/tasklist"
)

// Options configures a Session.
type Options struct {
	// RelativeDates accepts inputs such as "tomorrow" in date arguments.
	RelativeDates bool
	// Now supplies the reference time for relative dates. Defaults to time.Now.
	Now func() time.Time
	// Logger receives diagnostics. Defaults to a logger that discards.
	Logger *log.Logger
}

// Session holds one task list and the store it is saved to.
type Session struct {
	ID string

	list   *tasklist.List
	store  repository.Store
	opts   Options
	logger *log.Logger
	notice string
	exited bool
}

// Result is the outcome of one successfully executed command.
type Result struct {
	Command parser.Command `json:"-"`
	Word    parser.Word    `json:"command"`

	// Task is the task added, marked, unmarked or deleted.
	Task *task.Task `json:"task,omitempty"`
	// Size is the list size after the command.
	Size int `json:"size"`
	// Matches holds list or find output, with current positions.
	Matches []tasklist.Match `json:"matches,omitempty"`
	// Exit is set by bye.
	Exit bool `json:"exit,omitempty"`
	// SaveErr is set when the change was applied in memory but could not
	// be written to the store. The change is not rolled back.
	SaveErr error `json:"-"`
}

// Open loads the list from store. A store that cannot be read is not fatal:
// the session starts with an empty list and Notice explains why.
func Open(store repository.Store, opts Options) *Session {
	s := newSession(nil, store, opts)

	tasks, err := store.Load()
	if err != nil {
		s.logger.Warn("could not load tasks, starting empty",
			"path", store.Location(), "kind", apperr.KindOf(err), "err", err)
		s.notice = "Could not read saved tasks (" + err.Error() + "); starting with an empty list."
		return s
	}

	s.list = tasklist.New(tasks)
	s.logger.Info("loaded tasks", "path", store.Location(), "count", len(tasks))
	return s
}

// New returns a session over an existing list without loading from store.
func New(list *tasklist.List, store repository.Store, opts Options) *Session {
	return newSession(list, store, opts)
}

func newSession(list *tasklist.List, store repository.Store, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if list == nil {
		list = tasklist.New(nil)
	}
	id := uuid.NewString()[:8]
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Session{
		ID:     id,
		list:   list,
		store:  store,
		opts:   opts,
		logger: logger.With("session", id),
	}
}

// Notice returns the startup note, if loading fell back to an empty list.
func (s *Session) Notice() string {
	return s.notice
}

// Exited reports whether bye has been executed.
func (s *Session) Exited() bool {
	return s.exited
}

// Tasks returns a snapshot of the current list.
func (s *Session) Tasks() []task.Task {
	return s.list.Tasks()
}

// Len returns the current list size.
func (s *Session) Len() int {
	return s.list.Len()
}

// Execute parses and runs one line. Parse and validation errors leave the
// list and the store untouched.
func (s *Session) Execute(line string) (Result, error) {
	cmd, err := parser.ParseWith(line, parser.Options{
		RelativeDates: s.opts.RelativeDates,
		Now:           s.opts.Now(),
	})
	if err != nil {
		s.logger.Debug("parse failed", "input", line, "kind", apperr.KindOf(err))
		return Result{}, err
	}

	res, err := s.apply(cmd)
	if err != nil {
		s.logger.Debug("command failed", "command", cmd.Word, "kind", apperr.KindOf(err))
		return Result{}, err
	}
	res.Command = cmd
	res.Word = cmd.Word
	res.Size = s.list.Len()

	if cmd.Mutates() {
		if err := s.store.Save(s.list.Tasks()); err != nil {
			s.logger.Warn("could not save tasks", "path", s.store.Location(), "err", err)
			res.SaveErr = err
		} else {
			s.logger.Debug("saved tasks", "path", s.store.Location(), "count", res.Size)
		}
	}
	s.logger.Debug("executed", "command", cmd.Word, "size", res.Size)
	return res, nil
}

func (s *Session) apply(cmd parser.Command) (Result, error) {
	switch cmd.Word {
	case parser.Bye:
		s.exited = true
		return Result{Exit: true}, nil

	case parser.List:
		return Result{Matches: s.list.Find(tasklist.Query{})}, nil

	case parser.Todo:
		t, _, err := s.list.AddTodo(cmd.Description)
		return taskResult(t, err)

	case parser.Deadline:
		t, _, err := s.list.AddDeadline(cmd.Description, cmd.By)
		return taskResult(t, err)

	case parser.Event:
		t, _, err := s.list.AddEvent(cmd.Description, cmd.From, cmd.To)
		return taskResult(t, err)

	case parser.Mark, parser.Unmark:
		t, err := s.list.SetMarked(cmd.Index, cmd.Word == parser.Mark)
		return taskResult(t, err)

	case parser.Delete:
		t, err := s.list.Delete(cmd.Index)
		return taskResult(t, err)

	case parser.Find:
		q := tasklist.Query{
			Keywords: cmd.Search.Keywords,
			Strict:   cmd.Search.Strict,
			Kinds:    cmd.Search.Kinds,
			HasDate:  cmd.Search.HasDate,
			Date:     cmd.Search.Date,
			Sort:     cmd.Search.Sort,
		}
		return Result{Matches: s.list.Find(q)}, nil
	}
	return Result{}, apperr.New(apperr.UnrecognizedCommand, "sorry, I don't know what %q means", cmd.Word)
}

func taskResult(t task.Task, err error) (Result, error) {
	if err != nil {
		return Result{}, err
	}
	return Result{Task: &t}, nil
}

// Replace swaps in a new list and saves it. Used by commands that rewrite
// the whole collection, such as clear.
func (s *Session) Replace(tasks []task.Task) error {
	s.list = tasklist.New(tasks)
	return s.store.Save(s.list.Tasks())
}

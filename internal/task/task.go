// Package task defines the three task variants (todo, deadline, event) as a
// single closed type, with per-variant validation and rendering.
package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/dateparse"
)

// Kind identifies a task variant. Values double as record type tags.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// IsValid reports whether k is one of the known variants.
func (k Kind) IsValid() bool {
	switch k {
	case KindTodo, KindDeadline, KindEvent:
		return true
	}
	return false
}

// Name returns the lower-case command word for the variant.
func (k Kind) Name() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	}
	return string(k)
}

// Task is a todo, deadline or event. Fields are set once by the constructors;
// only the done flag changes afterwards, through Mark and Unmark.
type Task struct {
	kind        Kind
	description string
	done        bool
	by          dateparse.Date // deadline only
	from        dateparse.Date // event only
	to          dateparse.Date // event only
}

// NewTodo creates a todo. The description is trimmed and must not be empty.
func NewTodo(description string) (Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindTodo, description: desc}, nil
}

// NewDeadline creates a deadline due on by (YYYY-MM-DD).
func NewDeadline(description, by string) (Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	d, err := dateparse.Parse(by)
	if err != nil {
		return Task{}, err
	}
	return Task{kind: KindDeadline, description: desc, by: d}, nil
}

// NewEvent creates an event spanning from..to inclusive. from must not be
// after to.
func NewEvent(description, from, to string) (Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	start, err := dateparse.Parse(from)
	if err != nil {
		return Task{}, err
	}
	end, err := dateparse.Parse(to)
	if err != nil {
		return Task{}, err
	}
	if start.After(end) {
		return Task{}, apperr.New(apperr.InvalidRange,
			"event start %s is after its end %s", start.Display(), end.Display())
	}
	return Task{kind: KindEvent, description: desc, from: start, to: end}, nil
}

func cleanDescription(description string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", apperr.New(apperr.EmptyDescription, "the description of a task cannot be empty")
	}
	// One task is one line on disk.
	if strings.ContainsAny(desc, "\r\n") {
		return "", apperr.New(apperr.MultilineDescription, "the description of a task must fit on one line")
	}
	return desc, nil
}

// Kind returns the task variant.
func (t Task) Kind() Kind { return t.kind }

// Description returns the trimmed description.
func (t Task) Description() string { return t.description }

// Done reports whether the task is marked as completed.
func (t Task) Done() bool { return t.done }

// By returns the due date of a deadline.
func (t Task) By() dateparse.Date { return t.by }

// From returns the first day of an event.
func (t Task) From() dateparse.Date { return t.from }

// To returns the last day of an event.
func (t Task) To() dateparse.Date { return t.to }

// Mark flags the task as done.
func (t *Task) Mark() { t.done = true }

// Unmark clears the done flag.
func (t *Task) Unmark() { t.done = false }

func (t Task) statusIcon() string {
	if t.done {
		return "X"
	}
	return " "
}

// Render returns the display line, e.g. "[D][ ] pay rent (by: Apr 1 2026)".
func (t Task) Render() string {
	base := fmt.Sprintf("[%s][%s] %s", t.kind, t.statusIcon(), t.description)
	switch t.kind {
	case KindDeadline:
		return base + fmt.Sprintf(" (by: %s)", t.by.Display())
	case KindEvent:
		return base + fmt.Sprintf(" (from: %s to: %s)", t.from.Display(), t.to.Display())
	default:
		return base
	}
}

// String implements fmt.Stringer.
func (t Task) String() string {
	return t.Render()
}

// OccursOn reports whether the task falls on date: a deadline due that day
// or an event whose range covers it. Todos never match.
func (t Task) OccursOn(date dateparse.Date) bool {
	switch t.kind {
	case KindDeadline:
		return t.by.Equal(date)
	case KindEvent:
		return date.Within(t.from, t.to)
	default:
		return false
	}
}

// ContainsKeyword reports whether the description contains keyword,
// ignoring case.
func (t Task) ContainsKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(t.description), strings.ToLower(keyword))
}

type taskJSON struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Done        bool            `json:"done"`
	By          *dateparse.Date `json:"by,omitempty"`
	From        *dateparse.Date `json:"from,omitempty"`
	To          *dateparse.Date `json:"to,omitempty"`
}

// MarshalJSON encodes the task with only the date fields its variant uses.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{Type: t.kind.Name(), Description: t.description, Done: t.done}
	switch t.kind {
	case KindDeadline:
		by := t.by
		out.By = &by
	case KindEvent:
		from, to := t.from, t.to
		out.From, out.To = &from, &to
	}
	return json.Marshal(out)
}

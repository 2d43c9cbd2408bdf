// Package tasklist holds the ordered in-memory task collection and the
// add, mark, delete and search operations on it. It does no I/O; callers
// persist the collection after each successful mutation.
package tasklist

import (
	"slices"
	"strings"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/dateparse"
	"github.com/marcus/jot/internal/task"
)

// List is an insertion-ordered task collection addressed by 1-based
// position. Positions shift down when an earlier task is deleted.
type List struct {
	tasks []task.Task
}

// New returns a list holding a copy of tasks.
func New(tasks []task.Task) *List {
	return &List{tasks: slices.Clone(tasks)}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in order.
func (l *List) Tasks() []task.Task {
	return slices.Clone(l.tasks)
}

// Get returns the task at 1-based position index.
func (l *List) Get(index int) (task.Task, error) {
	i, err := l.offset(index)
	if err != nil {
		return task.Task{}, err
	}
	return l.tasks[i], nil
}

// AddTodo appends a todo and returns it with the new list size.
func (l *List) AddTodo(description string) (task.Task, int, error) {
	t, err := task.NewTodo(description)
	if err != nil {
		return task.Task{}, l.Len(), err
	}
	return l.add(t)
}

// AddDeadline appends a deadline due on by.
func (l *List) AddDeadline(description, by string) (task.Task, int, error) {
	t, err := task.NewDeadline(description, by)
	if err != nil {
		return task.Task{}, l.Len(), err
	}
	return l.add(t)
}

// AddEvent appends an event spanning from..to.
func (l *List) AddEvent(description, from, to string) (task.Task, int, error) {
	t, err := task.NewEvent(description, from, to)
	if err != nil {
		return task.Task{}, l.Len(), err
	}
	return l.add(t)
}

func (l *List) add(t task.Task) (task.Task, int, error) {
	l.tasks = append(l.tasks, t)
	return t, len(l.tasks), nil
}

// SetMarked sets the done flag of the task at index and returns it.
func (l *List) SetMarked(index int, done bool) (task.Task, error) {
	i, err := l.offset(index)
	if err != nil {
		return task.Task{}, err
	}
	if done {
		l.tasks[i].Mark()
	} else {
		l.tasks[i].Unmark()
	}
	return l.tasks[i], nil
}

// Delete removes and returns the task at index. Later tasks move up one
// position.
func (l *List) Delete(index int) (task.Task, error) {
	i, err := l.offset(index)
	if err != nil {
		return task.Task{}, err
	}
	removed := l.tasks[i]
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return removed, nil
}

// offset converts a 1-based position into a slice offset.
func (l *List) offset(index int) (int, error) {
	if index < 1 || index > len(l.tasks) {
		if len(l.tasks) == 0 {
			return 0, apperr.New(apperr.IndexOutOfRange, "task number %d is out of range, the list is empty", index)
		}
		return 0, apperr.New(apperr.IndexOutOfRange,
			"task number %d is out of range, choose between 1 and %d", index, len(l.tasks))
	}
	return index - 1, nil
}

// Match is a search hit together with its current position in the list.
type Match struct {
	Position int       `json:"position"`
	Task     task.Task `json:"task"`
}

// Query selects tasks for Find. The zero Query matches every task.
type Query struct {
	// Keywords are matched case-insensitively against descriptions.
	Keywords []string
	// Strict requires every keyword; otherwise any keyword suffices.
	Strict bool
	// Kinds restricts results to these variants. Empty means all.
	Kinds []task.Kind
	// HasDate keeps only deadlines due on Date and events covering it.
	HasDate bool
	Date    dateparse.Date
	// Sort orders results by description, ignoring case. Otherwise list order is kept.
	Sort bool
}

// FindByDate returns the deadlines due on date and the events whose range
// includes it, in list order.
func (l *List) FindByDate(date dateparse.Date) []Match {
	return l.Find(Query{HasDate: true, Date: date})
}

// Find returns the tasks matching q. Filters apply in order: kind, keywords,
// date; a task must pass all of them.
func (l *List) Find(q Query) []Match {
	matches := []Match{}
	for i, t := range l.tasks {
		if !matchesKind(t, q.Kinds) {
			continue
		}
		if !matchesKeywords(t, q.Keywords, q.Strict) {
			continue
		}
		if q.HasDate && !t.OccursOn(q.Date) {
			continue
		}
		matches = append(matches, Match{Position: i + 1, Task: t})
	}

	if q.Sort {
		slices.SortStableFunc(matches, func(a, b Match) int {
			return strings.Compare(
				strings.ToLower(a.Task.Description()),
				strings.ToLower(b.Task.Description()))
		})
	}
	return matches
}

func matchesKind(t task.Task, kinds []task.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	return slices.Contains(kinds, t.Kind())
}

func matchesKeywords(t task.Task, keywords []string, strict bool) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		found := t.ContainsKeyword(kw)
		if strict && !found {
			return false
		}
		if !strict && found {
			return true
		}
	}
	return strict
}

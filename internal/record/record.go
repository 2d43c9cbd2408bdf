// Package record converts tasks to and from the single-line, " | "-delimited
// form used by the data file.
//
//	T | <0|1> | <description>
//	D | <0|1> | <description> | <YYYY-MM-DD>
//	E | <0|1> | <description> | <YYYY-MM-DD> | <YYYY-MM-DD>
package record

import (
	"strings"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/task"
)

// Delimiter separates record fields.
const Delimiter = " | "

const (
	doneFlag    = "1"
	notDoneFlag = "0"

	// Minimum field counts per tag.
	todoFields     = 3
	deadlineFields = 4
	eventFields    = 5
)

// Encode returns the record line for t, without a trailing newline.
func Encode(t task.Task) string {
	flag := notDoneFlag
	if t.Done() {
		flag = doneFlag
	}
	fields := []string{string(t.Kind()), flag, t.Description()}
	switch t.Kind() {
	case task.KindDeadline:
		fields = append(fields, t.By().String())
	case task.KindEvent:
		fields = append(fields, t.From().String(), t.To().String())
	}
	return strings.Join(fields, Delimiter)
}

// Decode parses a record line. Dates are taken from the trailing fields, so a
// description that itself contains the delimiter survives a round trip.
func Decode(line string) (task.Task, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return task.Task{}, apperr.New(apperr.CorruptRecord, "corrupt record: empty line")
	}

	fields := strings.Split(line, Delimiter)
	if len(fields) < todoFields {
		return task.Task{}, apperr.New(apperr.CorruptRecord,
			"corrupt record: expected at least %d fields, found %d", todoFields, len(fields))
	}

	kind := task.Kind(fields[0])
	if !kind.IsValid() {
		return task.Task{}, apperr.New(apperr.UnknownTaskType, "unknown task type %q in record", fields[0])
	}

	var done bool
	switch fields[1] {
	case doneFlag:
		done = true
	case notDoneFlag:
	default:
		return task.Task{}, apperr.New(apperr.CorruptRecord, "corrupt record: completion flag %q is not 0 or 1", fields[1])
	}

	t, err := build(kind, fields)
	if err != nil {
		return task.Task{}, err
	}
	if done {
		t.Mark()
	}
	return t, nil
}

func build(kind task.Kind, fields []string) (task.Task, error) {
	var (
		t   task.Task
		err error
	)
	switch kind {
	case task.KindTodo:
		t, err = task.NewTodo(joinDescription(fields[2:]))
	case task.KindDeadline:
		if len(fields) < deadlineFields {
			return task.Task{}, insufficient(kind, deadlineFields, len(fields))
		}
		n := len(fields)
		t, err = task.NewDeadline(joinDescription(fields[2:n-1]), fields[n-1])
	case task.KindEvent:
		if len(fields) < eventFields {
			return task.Task{}, insufficient(kind, eventFields, len(fields))
		}
		n := len(fields)
		t, err = task.NewEvent(joinDescription(fields[2:n-2]), fields[n-2], fields[n-1])
	}
	if err != nil {
		return task.Task{}, apperr.Wrap(apperr.CorruptRecord, err, "corrupt record: %v", err)
	}
	return t, nil
}

func joinDescription(parts []string) string {
	return strings.Join(parts, Delimiter)
}

func insufficient(kind task.Kind, want, got int) error {
	return apperr.New(apperr.CorruptRecord,
		"corrupt record: %s needs %d fields, found %d", kind.Name(), want, got)
}

package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/dateparse"
	"github.com/marcus/jot/internal/task"
)

func TestCommandWords(t *testing.T) {
	tests := []struct {
		input string
		want  Word
	}{
		{"bye", Bye},
		{"BYE", Bye},
		{"  list  ", List},
		{"List everything", List},
		{"todo read", Todo},
		{"ToDo read", Todo},
		{"deadline x /by 2026-01-01", Deadline},
		{"event x /from 2026-01-01 /to 2026-01-02", Event},
		{"mark 1", Mark},
		{"unmark 1", Unmark},
		{"delete 1", Delete},
		{"find x", Find},
		{"todo\tread", Todo},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if cmd.Word != tt.want {
			t.Errorf("Parse(%q).Word = %q, want %q", tt.input, cmd.Word, tt.want)
		}
	}
}

func TestUnrecognizedCommand(t *testing.T) {
	for _, input := range []string{"", "   ", "hello", "finddate 2026-01-01", "todos x", "/todo x"} {
		_, err := Parse(input)
		if !errors.Is(err, apperr.ErrUnrecognizedCommand) {
			t.Errorf("Parse(%q) error = %v, want UnrecognizedCommand", input, err)
		}
	}
}

func TestUnrecognizedCommandHint(t *testing.T) {
	_, err := Parse("dealine pay rent /by 2026-04-01")
	want := `sorry, I don't know what "dealine" means (did you mean "deadline"?)`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %s", err, want)
	}

	_, err = Parse("hello")
	if err == nil || err.Error() != `sorry, I don't know what "hello" means` {
		t.Errorf("error = %v", err)
	}
}

func TestTodo(t *testing.T) {
	cmd, err := Parse("todo   buy milk  ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Description != "buy milk" {
		t.Errorf("Description = %q", cmd.Description)
	}

	for _, input := range []string{"todo", "todo    "} {
		if _, err := Parse(input); !errors.Is(err, apperr.ErrEmptyDescription) {
			t.Errorf("Parse(%q) error = %v, want EmptyDescription", input, err)
		}
	}
}

func TestDeadline(t *testing.T) {
	cmd, err := Parse("deadline pay rent /by 2026-04-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Description != "pay rent" || cmd.By != "2026-04-01" {
		t.Errorf("got description %q by %q", cmd.Description, cmd.By)
	}

	// Date text is passed through; validation belongs to the task model.
	cmd, err = Parse("deadline essay /by next friday")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.By != "next friday" {
		t.Errorf("By = %q", cmd.By)
	}

	// A slash inside the description is not a marker.
	cmd, err = Parse("deadline read a/b testing /by 2026-01-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Description != "read a/b testing" {
		t.Errorf("Description = %q", cmd.Description)
	}
}

func TestDeadlineErrors(t *testing.T) {
	tests := []struct {
		input string
		want  *apperr.Error
	}{
		{"deadline pay rent", apperr.ErrMissingByMarker},
		{"deadline", apperr.ErrMissingByMarker},
		{"deadline pay rent /byfriday", apperr.ErrMissingByMarker},
		{"deadline pay rent /by", apperr.ErrMissingDeadlineDate},
		{"deadline pay rent /by   ", apperr.ErrMissingDeadlineDate},
		{"deadline /by 2026-04-01", apperr.ErrEmptyDescription},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %s", tt.input, err, tt.want.Kind)
		}
	}
}

func TestEvent(t *testing.T) {
	cmd, err := Parse("event book fair /from 2026-02-15 /to 2026-02-18")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Description != "book fair" || cmd.From != "2026-02-15" || cmd.To != "2026-02-18" {
		t.Errorf("got %+v", cmd)
	}

	// "/today" is not the /to marker.
	cmd, err = Parse("event plan /today stuff /from 2026-02-15 /to 2026-02-18")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Description != "plan /today stuff" {
		t.Errorf("Description = %q", cmd.Description)
	}
}

func TestEventErrors(t *testing.T) {
	tests := []struct {
		input string
		want  *apperr.Error
	}{
		{"event fair", apperr.ErrMissingFromOrTo},
		{"event fair /from 2026-02-15", apperr.ErrMissingFromOrTo},
		{"event fair /to 2026-02-18", apperr.ErrMissingFromOrTo},
		{"event fair /to 2026-02-18 /from 2026-02-15", apperr.ErrMissingFromOrTo},
		{"event /from 2026-02-15 /to 2026-02-18", apperr.ErrEmptyEventSegment},
		{"event fair /from /to 2026-02-18", apperr.ErrEmptyEventSegment},
		{"event fair /from 2026-02-15 /to", apperr.ErrEmptyEventSegment},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %s", tt.input, err, tt.want.Kind)
		}
	}
}

func TestIndexCommands(t *testing.T) {
	tests := []struct {
		input string
		word  Word
		index int
	}{
		{"mark 1", Mark, 1},
		{"unmark 12", Unmark, 12},
		{"delete   3  ", Delete, 3},
		{"delete 0", Delete, 0},
		{"mark -2", Mark, -2},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if cmd.Word != tt.word || cmd.Index != tt.index {
			t.Errorf("Parse(%q) = %s %d", tt.input, cmd.Word, cmd.Index)
		}
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		input string
		want  *apperr.Error
	}{
		{"mark", apperr.ErrMissingIndex},
		{"unmark   ", apperr.ErrMissingIndex},
		{"delete", apperr.ErrMissingIndex},
		{"mark one", apperr.ErrInvalidIndex},
		{"delete 1.5", apperr.ErrInvalidIndex},
		{"delete 1 2", apperr.ErrInvalidIndex},
		{"unmark 3x", apperr.ErrInvalidIndex},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %s", tt.input, err, tt.want.Kind)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		input string
		want  Search
	}{
		{"find book", Search{Keywords: []string{"book"}}},
		{"find book milk", Search{Keywords: []string{"book", "milk"}}},
		{"find book milk /all", Search{Keywords: []string{"book", "milk"}, Strict: true}},
		{"find /sort book /todo", Search{Keywords: []string{"book"}, Sort: true, Kinds: []task.Kind{task.KindTodo}}},
		{"find x /event /todo /deadline", Search{Keywords: []string{"x"},
			Kinds: []task.Kind{task.KindTodo, task.KindDeadline, task.KindEvent}}},
		{"find /date 2026-02-20", Search{HasDate: true, Date: dateparse.MustParse("2026-02-20")}},
		{"find book /date 2026-02-20 /sort", Search{Keywords: []string{"book"}, Sort: true,
			HasDate: true, Date: dateparse.MustParse("2026-02-20")}},
		{"find /date 0001-01-01", Search{HasDate: true, Date: dateparse.MustParse("0001-01-01")}},
		{"find /todo/x", Search{Keywords: []string{"/todo/x"}}},
		{"find /today", Search{Keywords: []string{"/today"}}},
	}
	for _, tt := range tests {
		cmd, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(cmd.Search, tt.want) {
			t.Errorf("Parse(%q).Search = %+v, want %+v", tt.input, cmd.Search, tt.want)
		}
	}
}

func TestFindErrors(t *testing.T) {
	tests := []struct {
		input string
		want  *apperr.Error
	}{
		{"find", apperr.ErrMissingSearchCriteria},
		{"find   ", apperr.ErrMissingSearchCriteria},
		{"find /all /sort", apperr.ErrMissingSearchCriteria},
		{"find /todo /event", apperr.ErrMissingSearchCriteria},
		{"find /date", apperr.ErrInvalidDate},
		{"find book /date 2026-02-30", apperr.ErrInvalidDate},
		{"find /date tomorrow", apperr.ErrInvalidDate},
		{"find /date /sort", apperr.ErrInvalidDate},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %s", tt.input, err, tt.want.Kind)
		}
	}
}

func TestRelativeDates(t *testing.T) {
	opts := Options{RelativeDates: true, Now: time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)}

	cmd, err := ParseWith("deadline essay /by tomorrow", opts)
	if err != nil {
		t.Fatalf("ParseWith: %v", err)
	}
	if cmd.By != "2026-02-19" {
		t.Errorf("By = %q, want 2026-02-19", cmd.By)
	}

	cmd, err = ParseWith("event trip /from today /to +3d", opts)
	if err != nil {
		t.Fatalf("ParseWith: %v", err)
	}
	if cmd.From != "2026-02-18" || cmd.To != "2026-02-21" {
		t.Errorf("From/To = %q/%q", cmd.From, cmd.To)
	}

	cmd, err = ParseWith("find /date friday", opts)
	if err != nil {
		t.Fatalf("ParseWith: %v", err)
	}
	if cmd.Search.Date.String() != "2026-02-20" {
		t.Errorf("Date = %s", cmd.Search.Date)
	}

	// Without the option the same text is left for strict validation.
	cmd, err = Parse("deadline essay /by tomorrow")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.By != "tomorrow" {
		t.Errorf("By = %q", cmd.By)
	}
}

func TestMutates(t *testing.T) {
	mutating := map[Word]bool{Todo: true, Deadline: true, Event: true, Mark: true, Unmark: true, Delete: true}
	for _, w := range Words() {
		if got := (Command{Word: w}).Mutates(); got != mutating[w] {
			t.Errorf("%s.Mutates() = %v", w, got)
		}
	}
}

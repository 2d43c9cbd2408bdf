// Package parser turns one line of user input into a validated Command.
// Parsing is pure: it reads nothing but the line and never touches the
// task list.
package parser

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/dateparse"
	"github.com/marcus/jot/internal/suggest"
	"github.com/marcus/jot/internal/task"
)

// Word is a recognized command word.
type Word string

const (
	Bye      Word = "bye"
	Todo     Word = "todo"
	Deadline Word = "deadline"
	Event    Word = "event"
	Mark     Word = "mark"
	Unmark   Word = "unmark"
	List     Word = "list"
	Delete   Word = "delete"
	Find     Word = "find"
)

var words = map[string]Word{
	"bye":      Bye,
	"todo":     Todo,
	"deadline": Deadline,
	"event":    Event,
	"mark":     Mark,
	"unmark":   Unmark,
	"list":     List,
	"delete":   Delete,
	"find":     Find,
}

// Words returns the recognized command words in display order.
func Words() []Word {
	return []Word{Todo, Deadline, Event, List, Mark, Unmark, Delete, Find, Bye}
}

// Flag markers.
const (
	markerBy     = "/by"
	markerFrom   = "/from"
	markerTo     = "/to"
	flagAll      = "/all"
	flagTodo     = "/todo"
	flagDeadline = "/deadline"
	flagEvent    = "/event"
	flagSort     = "/sort"
	flagDate     = "/date"
)

// Command is a parsed input line. Only the fields relevant to Word are set.
type Command struct {
	Word Word

	// todo, deadline, event
	Description string
	By          string
	From        string
	To          string

	// mark, unmark, delete
	Index int

	// find
	Search Search
}

// Mutates reports whether executing the command changes the task list.
func (c Command) Mutates() bool {
	switch c.Word {
	case Todo, Deadline, Event, Mark, Unmark, Delete:
		return true
	}
	return false
}

// Search holds the criteria of a find command.
type Search struct {
	Keywords []string
	Strict   bool
	Kinds    []task.Kind
	Sort     bool
	// HasDate is set by /date; Date is meaningful only then.
	HasDate bool
	Date    dateparse.Date
}

// Options adjusts parsing. The zero value accepts only YYYY-MM-DD dates.
type Options struct {
	// RelativeDates lets date arguments use forms such as "tomorrow" or
	// "+3d"; they are rewritten to YYYY-MM-DD relative to Now.
	RelativeDates bool
	Now           time.Time
}

// Parse parses line with default options.
func Parse(line string) (Command, error) {
	return ParseWith(line, Options{})
}

// ParseWith parses line. The first whitespace-delimited token, lower-cased,
// selects the command; the rest of the line is its argument text.
func ParseWith(line string, opts Options) (Command, error) {
	word, rest := splitCommandWord(line)
	w, ok := words[word]
	if !ok {
		if word == "" {
			return Command{}, apperr.New(apperr.UnrecognizedCommand, "please type a command")
		}
		return Command{}, unrecognized(word)
	}

	p := &lineParser{opts: opts}
	switch w {
	case Bye, List:
		return Command{Word: w}, nil
	case Todo:
		return p.todo(rest)
	case Deadline:
		return p.deadline(rest)
	case Event:
		return p.event(rest)
	case Mark, Unmark, Delete:
		return p.index(w, rest)
	case Find:
		return p.find(rest)
	}
	return Command{}, unrecognized(word)
}

func unrecognized(word string) error {
	names := make([]string, 0, len(words))
	for _, w := range Words() {
		names = append(names, string(w))
	}
	return apperr.New(apperr.UnrecognizedCommand, "sorry, I don't know what %q means%s", word, suggest.Hint(word, names))
}

func splitCommandWord(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), line[i:]
}

type lineParser struct {
	opts Options
}

func (p *lineParser) date(text string) string {
	if p.opts.RelativeDates {
		return dateparse.Expand(text, p.opts.Now)
	}
	return text
}

func (p *lineParser) todo(rest string) (Command, error) {
	desc := strings.TrimSpace(rest)
	if desc == "" {
		return Command{}, apperr.New(apperr.EmptyDescription, "the description of a todo cannot be empty")
	}
	return Command{Word: Todo, Description: desc}, nil
}

func (p *lineParser) deadline(rest string) (Command, error) {
	start, end, ok := findMarker(rest, markerBy)
	if !ok {
		return Command{}, apperr.New(apperr.MissingByMarker, "a deadline needs /by followed by a date, e.g. deadline return book /by 2026-02-20")
	}
	desc := strings.TrimSpace(rest[:start])
	by := strings.TrimSpace(rest[end:])
	if desc == "" {
		return Command{}, apperr.New(apperr.EmptyDescription, "the description of a deadline cannot be empty")
	}
	if by == "" {
		return Command{}, apperr.New(apperr.MissingDeadlineDate, "missing date after /by")
	}
	return Command{Word: Deadline, Description: desc, By: p.date(by)}, nil
}

func (p *lineParser) event(rest string) (Command, error) {
	fromStart, fromEnd, hasFrom := findMarker(rest, markerFrom)
	if !hasFrom {
		return Command{}, apperr.New(apperr.MissingFromOrTo, "an event needs /from and /to, e.g. event fair /from 2026-02-15 /to 2026-02-18")
	}
	toStart, toEnd, hasTo := findMarker(rest[fromEnd:], markerTo)
	if !hasTo {
		return Command{}, apperr.New(apperr.MissingFromOrTo, "an event needs /to after /from")
	}
	toStart += fromEnd
	toEnd += fromEnd

	desc := strings.TrimSpace(rest[:fromStart])
	from := strings.TrimSpace(rest[fromEnd:toStart])
	to := strings.TrimSpace(rest[toEnd:])
	switch {
	case desc == "":
		return Command{}, apperr.New(apperr.EmptyEventSegment, "the description of an event cannot be empty")
	case from == "":
		return Command{}, apperr.New(apperr.EmptyEventSegment, "missing start date after /from")
	case to == "":
		return Command{}, apperr.New(apperr.EmptyEventSegment, "missing end date after /to")
	}
	return Command{Word: Event, Description: desc, From: p.date(from), To: p.date(to)}, nil
}

func (p *lineParser) index(w Word, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Command{}, apperr.New(apperr.MissingIndex, "which task? e.g. %s 2", w)
	}
	if len(fields) > 1 {
		return Command{}, apperr.New(apperr.InvalidIndex, "%q is not a task number", strings.Join(fields, " "))
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, apperr.New(apperr.InvalidIndex, "%q is not a task number", fields[0])
	}
	return Command{Word: w, Index: n}, nil
}

// find extracts flags first; every token left over is a keyword.
func (p *lineParser) find(rest string) (Command, error) {
	var s Search
	wanted := map[task.Kind]bool{}
	tokens := strings.Fields(rest)
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case flagAll:
			s.Strict = true
		case flagTodo:
			wanted[task.KindTodo] = true
		case flagDeadline:
			wanted[task.KindDeadline] = true
		case flagEvent:
			wanted[task.KindEvent] = true
		case flagSort:
			s.Sort = true
		case flagDate:
			if i+1 >= len(tokens) {
				return Command{}, apperr.New(apperr.InvalidDate, "missing date after /date")
			}
			i++
			d, err := p.searchDate(tokens[i])
			if err != nil {
				return Command{}, err
			}
			s.Date = d
			s.HasDate = true
		default:
			s.Keywords = append(s.Keywords, tokens[i])
		}
	}

	for _, k := range []task.Kind{task.KindTodo, task.KindDeadline, task.KindEvent} {
		if wanted[k] {
			s.Kinds = append(s.Kinds, k)
		}
	}

	if len(s.Keywords) == 0 && !s.HasDate {
		return Command{}, apperr.New(apperr.MissingSearchCriteria, "give me a keyword or /date to search for")
	}
	return Command{Word: Find, Search: s}, nil
}

func (p *lineParser) searchDate(text string) (dateparse.Date, error) {
	if p.opts.RelativeDates {
		return dateparse.ParseRelative(text, p.opts.Now)
	}
	return dateparse.Parse(text)
}

// findMarker locates the first occurrence of marker that stands as its own
// whitespace-delimited token, returning its byte span in s.
func findMarker(s, marker string) (start, end int, ok bool) {
	offset := 0
	for {
		i := strings.Index(s[offset:], marker)
		if i < 0 {
			return 0, 0, false
		}
		start = offset + i
		end = start + len(marker)
		if boundary(s, start-1) && boundary(s, end) {
			return start, end, true
		}
		offset = start + 1
	}
}

// boundary reports whether position i is outside s or holds whitespace.
func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	return unicode.IsSpace(rune(s[i]))
}

// Package output provides styled terminal output helpers (success, error,
// warning, task formatting) using lipgloss, and the reply text for each
// command result.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/jot/internal/apperr"
	"github.com/marcus/jot/internal/parser"
	"github.com/marcus/jot/internal/session"
	"github.com/marcus/jot/internal/task"
	"github.com/marcus/jot/internal/tasklist"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	kindStyles   = map[task.Kind]lipgloss.Style{
		task.KindTodo:     lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		task.KindDeadline: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		task.KindEvent:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(WarningText(fmt.Sprintf(format, args...)))
}

// ErrorText styles msg as an error without the ERROR prefix; used for
// replies inside an interactive session.
func ErrorText(msg string) string {
	return errorStyle.Render(msg)
}

// WarningText styles msg as a warning.
func WarningText(msg string) string {
	return warningStyle.Render("Warning: " + msg)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	return WriteJSON(os.Stdout, v)
}

// WriteJSON writes data as indented JSON to w.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Error codes for structured JSON output that are not task errors.
const (
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeInternal     = "internal_error"
)

// ErrorCode returns the JSON error code for err: its kind when it is a
// task error, ErrCodeInternal otherwise.
func ErrorCode(err error) string {
	if kind := apperr.KindOf(err); kind != "" {
		return string(kind)
	}
	return ErrCodeInternal
}

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	WriteJSONError(os.Stdout, code, message)
}

// WriteJSONError writes an error as JSON to w.
func WriteJSONError(w io.Writer, code, message string) {
	fmt.Fprintln(w, jsonError(code, message, ""))
}

// WriteJSONErrorWarning is WriteJSONError with a top-level "warning" key
// when warning is non-empty.
func WriteJSONErrorWarning(w io.Writer, code, message, warning string) {
	fmt.Fprintln(w, jsonError(code, message, warning))
}

func jsonError(code, message, warning string) string {
	doc := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}
	if warning != "" {
		doc["warning"] = warning
	}
	data, _ := json.Marshal(doc)
	return string(data)
}

// Greeting is the first line of an interactive session.
func Greeting() string {
	return "Hello! I'm Jot. What can I do for you?"
}

// Farewell is printed on bye.
func Farewell() string {
	return "Bye. Hope to see you again soon!"
}

// Response returns the reply text for a command result. It is plain text;
// callers style it for their surface.
func Response(res session.Result) string {
	switch res.Word {
	case parser.Bye:
		return Farewell()
	case parser.List:
		return listText(res.Matches)
	case parser.Find:
		return findText(res.Command.Search, res.Matches)
	case parser.Todo, parser.Deadline, parser.Event:
		return fmt.Sprintf("Got it. I've added this task:\n  %s\n%s", res.Task.Render(), countLine(res.Size))
	case parser.Mark:
		return "Nice! I've marked this task as done:\n  " + res.Task.Render()
	case parser.Unmark:
		return "OK, I've marked this task as not done yet:\n  " + res.Task.Render()
	case parser.Delete:
		return fmt.Sprintf("Noted. I've removed this task:\n  %s\n%s", res.Task.Render(), countLine(res.Size))
	}
	return ""
}

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list."
	}
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

func listText(matches []tasklist.Match) string {
	if len(matches) == 0 {
		return "Your task list is empty."
	}
	return "Here are the tasks in your list:\n" + matchLines(matches)
}

func findText(s parser.Search, matches []tasklist.Match) string {
	criteria := Criteria(s)
	if len(matches) == 0 {
		return fmt.Sprintf("No matching tasks for %s.", criteria)
	}
	return fmt.Sprintf("Here are the matching tasks for %s:\n%s", criteria, matchLines(matches))
}

func matchLines(matches []tasklist.Match) string {
	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = TaskLine(m.Position, m.Task)
	}
	return strings.Join(lines, "\n")
}

// TaskLine formats a task with its list position, e.g. "2.[D][ ] pay rent (by: Apr 1 2026)".
func TaskLine(position int, t task.Task) string {
	return fmt.Sprintf("%d.%s", position, t.Render())
}

// Criteria summarises a find command's search, e.g.
// "keywords: book, read (all must match) (sorted) in [todo]".
func Criteria(s parser.Search) string {
	var parts []string
	if len(s.Keywords) > 0 {
		kw := "keywords: " + strings.Join(s.Keywords, ", ")
		if len(s.Keywords) > 1 {
			if s.Strict {
				kw += " (all must match)"
			} else {
				kw += " (any may match)"
			}
		}
		parts = append(parts, kw)
	}
	if s.HasDate {
		parts = append(parts, "on "+s.Date.Display())
	}
	if s.Sort {
		parts = append(parts, "(sorted)")
	}
	if len(s.Kinds) > 0 {
		names := make([]string, len(s.Kinds))
		for i, k := range s.Kinds {
			names[i] = k.Name()
		}
		parts = append(parts, "in ["+strings.Join(names, ", ")+"]")
	}
	return strings.Join(parts, " ")
}

// FormatTask formats a task for a terminal: the kind badge in its colour,
// completed tasks dimmed with a green mark.
func FormatTask(position int, t task.Task) string {
	var sb strings.Builder
	sb.WriteString(subtleStyle.Render(fmt.Sprintf("%3d.", position)))
	sb.WriteString(" ")

	badge := fmt.Sprintf("[%s]", t.Kind())
	if style, ok := kindStyles[t.Kind()]; ok {
		badge = style.Render(badge)
	}
	sb.WriteString(badge)

	if t.Done() {
		sb.WriteString(successStyle.Render("[X]"))
	} else {
		sb.WriteString("[ ]")
	}
	sb.WriteString(" ")

	desc := t.Description()
	if t.Done() {
		desc = subtleStyle.Render(desc)
	} else {
		desc = titleStyle.Render(desc)
	}
	sb.WriteString(desc)

	switch t.Kind() {
	case task.KindDeadline:
		sb.WriteString(subtleStyle.Render(fmt.Sprintf(" (by: %s)", t.By().Display())))
	case task.KindEvent:
		sb.WriteString(subtleStyle.Render(fmt.Sprintf(" (from: %s to: %s)", t.From().Display(), t.To().Display())))
	}
	return sb.String()
}

// TruncateLine shortens a possibly styled line to width visible cells.
func TruncateLine(line string, width int) string {
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

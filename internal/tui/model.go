// Package tui is the full-screen interactive shell: a scrolling transcript
// above a single input line, driving a session one command at a time.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/session"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, input and help lines
	chromeHeight = 3
	maxHistory   = 100
)

// Model is the bubbletea model for the shell.
type Model struct {
	Session *session.Session

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	transcript []string
	history    []string
	historyPos int

	width    int
	height   int
	quitting bool
}

// New returns a shell over s. The transcript starts with the greeting and
// any load notice.
func New(s *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "todo read book"
	input.Prompt = "> "
	input.PromptStyle = promptStyle
	input.CharLimit = 500
	input.Width = defaultWidth - 4
	input.Focus()

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle
	h.Styles.ShortSeparator = helpStyle

	m := Model{
		Session:  s,
		input:    input,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:     h,
		keys:     defaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.appendLine(output.Greeting())
	if notice := s.Notice(); notice != "" {
		m.appendLine(warningStyle.Render(notice))
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(10, msg.Width-4)
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.recall(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line through the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.pushHistory(line)
	m.appendLine(echoStyle.Render("> " + line))

	res, err := m.Session.Execute(line)
	if err != nil {
		m.appendLine(errorStyle.Render(err.Error()))
		m.refresh()
		return m, nil
	}

	m.appendLine(output.Response(res))
	if res.SaveErr != nil {
		m.appendLine(warningStyle.Render("Warning: " + res.SaveErr.Error()))
	}
	m.refresh()

	if res.Exit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) appendLine(s string) {
	m.transcript = append(m.transcript, s)
}

func (m *Model) pushHistory(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
		if len(m.history) > maxHistory {
			m.history = m.history[1:]
		}
	}
	m.historyPos = len(m.history)
}

// recall moves through submitted lines; past the newest entry the input is cleared.
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.historyPos = min(max(m.historyPos+delta, 0), len(m.history))
	if m.historyPos == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.historyPos])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// Quitting reports whether the shell has been asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Transcript returns the lines shown so far.
func (m Model) Transcript() []string {
	return m.transcript
}

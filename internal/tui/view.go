package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/jot/internal/output"
)

// View renders the shell.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(output.TruncateLine(m.help.View(m.keys), m.width))
	return sb.String()
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("jot · %d tasks", m.Session.Len())
	return output.TruncateLine(headerStyle.Render(title), m.width)
}

// renderTranscript wraps each entry to the viewport width.
func (m Model) renderTranscript() string {
	wrap := lipgloss.NewStyle().Width(max(1, m.viewport.Width))
	lines := make([]string, len(m.transcript))
	for i, entry := range m.transcript {
		lines[i] = wrap.Render(entry)
	}
	return strings.Join(lines, "\n")
}

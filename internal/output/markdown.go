package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// TerminalWidth returns the current terminal width or a fallback when unavailable.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultMarkdownWidth
	}

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}

	if cols := os.Getenv("COLUMNS"); cols != "" {
		if parsed, err := strconv.Atoi(cols); err == nil && parsed > 0 {
			return parsed
		}
	}

	return fallback
}

// GuideMarkdown is the command reference shown by `jot guide`.
const GuideMarkdown = `# Jot

Type one command per line. Dates are written ` + "`YYYY-MM-DD`" + `.

| Command | Example |
|---------|---------|
| todo | ` + "`todo read book`" + ` |
| deadline | ` + "`deadline return book /by 2026-02-20`" + ` |
| event | ` + "`event fair /from 2026-02-19 /to 2026-02-21`" + ` |
| list | ` + "`list`" + ` |
| mark / unmark | ` + "`mark 2`" + ` |
| delete | ` + "`delete 3`" + ` |
| find | ` + "`find book /all /sort /todo`" + ` |
| bye | ` + "`bye`" + ` |

## Searching

- Several keywords match any of them; add ` + "`/all`" + ` to require all.
- ` + "`/todo`" + `, ` + "`/deadline`" + ` and ` + "`/event`" + ` restrict the task type.
- ` + "`/date YYYY-MM-DD`" + ` keeps deadlines due that day and events covering it.
- ` + "`/sort`" + ` orders results by description.

Positions in search results are list positions, so ` + "`mark`" + ` and ` + "`delete`" + ` accept them directly.
`

// Guide renders GuideMarkdown for the current terminal.
func Guide() (string, error) {
	return RenderMarkdown(GuideMarkdown)
}

// RenderMarkdown renders markdown using Glamour with terminal-aware wrapping.
func RenderMarkdown(text string) (string, error) {
	return RenderMarkdownWithWidth(text, TerminalWidth(defaultMarkdownWidth))
}

// RenderMarkdownWithWidth renders markdown using Glamour with explicit wrapping.
func RenderMarkdownWithWidth(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(rendered, "\n"), nil
}

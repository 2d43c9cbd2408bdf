package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	echoStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	helpStyle    = lipgloss.NewStyle().Foreground(mutedColor)
)

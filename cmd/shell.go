package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/jot/internal/tui"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Full-screen interactive session",
	Long: `Opens a terminal UI with the conversation above a single input line.

Key Bindings:
  enter          Run the command
  ↑/↓            Previous/next command
  pgup/pgdn      Scroll the conversation
  esc, ctrl+c    Quit`,
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		p := tea.NewProgram(tui.New(a.session), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running shell: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/marcus/jot/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var clearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete every task",
	GroupID: "data",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireReadable(a.session, "clear"); err != nil {
			return err
		}

		n := a.session.Len()
		if n == 0 {
			output.Info("Your task list is already empty.")
			return nil
		}

		if !yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				err := fmt.Errorf("refusing to clear %d tasks without --yes", n)
				output.Error("%v", err)
				return err
			}
			confirmed, err := confirmClear(n)
			if err != nil {
				return err
			}
			if !confirmed {
				output.Info("Nothing removed.")
				return nil
			}
		}

		if err := a.session.Replace(nil); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Removed %d tasks.", n)
		return nil
	},
}

func confirmClear(n int) (bool, error) {
	var confirmed bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete all %d tasks?", n)).
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed),
	)).Run()
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return confirmed, nil
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

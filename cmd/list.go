package cmd

import (
	"fmt"
	"io"

	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/session"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every task",
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if notice := a.session.Notice(); notice != "" {
			output.Warning("%s", notice)
		}
		return printList(a.session, jsonOut, cmd.OutOrStdout())
	},
}

func printList(sess *session.Session, jsonOut bool, out io.Writer) error {
	tasks := sess.Tasks()
	if jsonOut {
		return output.WriteJSON(out, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "Your task list is empty.")
		return nil
	}
	for i, t := range tasks {
		fmt.Fprintln(out, output.FormatTask(i+1, t))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Output as JSON")
}

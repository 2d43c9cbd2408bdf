package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/session"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run a single command and exit",
	Long: `Runs one command line, exactly as it would be typed in a session.

The words are joined with single spaces, so quote an argument when its
spacing matters.`,
	Example: `  jot exec todo read book
  jot exec deadline return book /by 2026-02-20
  jot exec --json find book /sort`,
	GroupID: "core",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return execLine(a.session, strings.Join(args, " "), jsonOut, cmd.OutOrStdout())
	},
}

// execResult is the JSON shape of a successful exec.
type execResult struct {
	session.Result
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// execLine runs line and writes the reply, or a JSON document when jsonOut.
// A load notice is shown ahead of the reply, or carried in "warning".
func execLine(sess *session.Session, line string, jsonOut bool, out io.Writer) error {
	notice := sess.Notice()
	if notice != "" && !jsonOut {
		fmt.Fprintln(out, output.WarningText(notice))
	}

	res, err := sess.Execute(line)
	if err != nil {
		if jsonOut {
			output.WriteJSONErrorWarning(out, output.ErrorCode(err), err.Error(), notice)
		} else {
			fmt.Fprintln(out, output.ErrorText(err.Error()))
		}
		return err
	}

	if jsonOut {
		payload := execResult{Result: res, Message: output.Response(res)}
		var warnings []string
		if notice != "" {
			warnings = append(warnings, notice)
		}
		if res.SaveErr != nil {
			warnings = append(warnings, res.SaveErr.Error())
		}
		payload.Warning = strings.Join(warnings, " ")
		return output.WriteJSON(out, payload)
	}

	fmt.Fprintln(out, output.Response(res))
	if res.SaveErr != nil {
		fmt.Fprintln(out, output.WarningText(res.SaveErr.Error()))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().Bool("json", false, "Output as JSON")
	// Task flags such as /by are not cobra flags; stop parsing at the first word.
	execCmd.Flags().SetInterspersed(false)
}

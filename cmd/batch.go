package cmd

import (
	"fmt"
	"io"

	"github.com/marcus/jot/internal/input"
	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/session"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|->",
	Short: "Run commands from a file or stdin",
	Long: `Runs one command per line from a file, or from stdin when the argument
is "-". Blank lines and lines starting with # are skipped. The run stops at
the first failing line unless --keep-going is given, and at bye.`,
	Example: `  jot batch chores.txt
  printf 'todo a\ntodo b\n' | jot batch -`,
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keepGoing, _ := cmd.Flags().GetBool("keep-going")

		lines, err := input.ReadLines(args[0], cmd.InOrStdin())
		if err != nil {
			output.Error("%v", err)
			return err
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return runBatch(a.session, lines, keepGoing, cmd.OutOrStdout())
	},
}

// runBatch executes lines in order and returns an error naming the first
// failing line. With keepGoing every line runs and the count of failures
// is reported instead.
func runBatch(sess *session.Session, lines []input.Line, keepGoing bool, out io.Writer) error {
	if notice := sess.Notice(); notice != "" {
		fmt.Fprintln(out, output.WarningText(notice))
	}

	failed := 0
	var first error
	for _, line := range lines {
		res, err := sess.Execute(line.Text)
		if err != nil {
			fmt.Fprintln(out, output.ErrorText(fmt.Sprintf("line %d: %v", line.Number, err)))
			failed++
			if first == nil {
				first = fmt.Errorf("line %d: %w", line.Number, err)
			}
			if !keepGoing {
				return first
			}
			continue
		}
		fmt.Fprintln(out, output.Response(res))
		if res.SaveErr != nil {
			fmt.Fprintln(out, output.WarningText(res.SaveErr.Error()))
		}
		if res.Exit {
			break
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed, first at %w", failed, len(lines), first)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolP("keep-going", "k", false, "Continue after a failing line")
}

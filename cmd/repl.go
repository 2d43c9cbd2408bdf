package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/session"
)

const prompt = "> "

// runREPL reads one command per line from in until bye or end of input.
// The prompt is only shown when interactive.
func runREPL(sess *session.Session, in io.Reader, out io.Writer, interactive bool) error {
	fmt.Fprintln(out, output.Greeting())
	if notice := sess.Notice(); notice != "" {
		fmt.Fprintln(out, output.WarningText(notice))
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		res, err := sess.Execute(line)
		if err != nil {
			fmt.Fprintln(out, output.ErrorText(err.Error()))
			continue
		}
		fmt.Fprintln(out, output.Response(res))
		if res.SaveErr != nil {
			fmt.Fprintln(out, output.WarningText(res.SaveErr.Error()))
		}
		if res.Exit {
			return nil
		}
	}
	return scanner.Err()
}

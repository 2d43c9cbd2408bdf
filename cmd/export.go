package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/repository"
	"github.com/marcus/jot/internal/session"
	"github.com/marcus/jot/internal/task"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <dest.db>",
	Short: "Copy the task list into a SQLite database",
	Long: `Writes the current task list to a SQLite database, replacing any tasks
already stored there. Point storage.sqlite_file at the result and set
storage.backend to sqlite to switch backends.`,
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireReadable(a.session, "export"); err != nil {
			return err
		}

		dest, err := filepath.Abs(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := exportTasks(a.session.Tasks(), dest); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Exported %d tasks to %s", a.session.Len(), dest)
		return nil
	},
}

// requireReadable refuses action when the saved list could not be loaded,
// since the session then holds an empty stand-in rather than the user's tasks.
func requireReadable(sess *session.Session, action string) error {
	notice := sess.Notice()
	if notice == "" {
		return nil
	}
	output.Error("%s", notice)
	return fmt.Errorf("refusing to %s an unreadable task list", action)
}

// exportTasks replaces the contents of the SQLite database at dest with tasks.
func exportTasks(tasks []task.Task, dest string) error {
	store, err := repository.OpenSQLite(dest)
	if err != nil {
		return fmt.Errorf("open %s: %w", dest, err)
	}
	defer store.Close()

	if err := store.Save(tasks); err != nil {
		return fmt.Errorf("export to %s: %w", dest, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

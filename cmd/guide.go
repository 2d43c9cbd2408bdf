package cmd

import (
	"fmt"

	"github.com/marcus/jot/internal/output"
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:     "guide",
	Short:   "Show the command reference",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			fmt.Fprint(cmd.OutOrStdout(), output.GuideMarkdown)
			return nil
		}

		rendered, err := output.Guide()
		if err != nil {
			output.Error("render guide: %v", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
	guideCmd.Flags().Bool("raw", false, "Print the markdown source")
}

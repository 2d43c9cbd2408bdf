package cmd

import (
	"fmt"

	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/workdir"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage jot configuration",
	GroupID: "system",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show effective config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, key := range config.Keys() {
			val, _ := cfg.Get(key)
			fmt.Fprintf(out, "%s = %s\n", key, val)
		}
		fmt.Fprintf(out, "\nhome = %s\n", cfg.Home)
		fmt.Fprintf(out, "storage = %s\n", cfg.StoragePath())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		val, err := cfg.Get(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		home, err := workdir.Home()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		path := configPath(home)

		if err := setConfigValue(home, path, key, val); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Set %s = %s", key, val)
		return nil
	},
}

// setConfigValue updates one key in the config file at path. Environment
// overrides are not applied, so they never end up on disk.
func setConfigValue(home, path, key, val string) error {
	cfg, err := config.LoadFile(home, path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Set(key, val); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

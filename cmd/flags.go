package cmd

import (
	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/repository"
	"github.com/spf13/pflag"
)

// globalFlags are the persistent flags every command accepts. They take
// precedence over the config file and the environment.
type globalFlags struct {
	dataFile   string
	configFile string
	logLevel   string
	logFormat  string
}

var globals globalFlags

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.dataFile, "data", "", "Task storage file for the configured backend")
	fs.StringVar(&g.configFile, "config", "", "Config file (default $JOT_HOME/config.toml)")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&g.logFormat, "log-format", "", "Log format: text, json, logfmt")
}

// apply copies every flag set on the command line into cfg.
func (g *globalFlags) apply(fs *pflag.FlagSet, cfg *config.Config) error {
	if fs.Changed("data") {
		if cfg.Storage.Backend == repository.BackendSQLite {
			cfg.Storage.SQLiteFile = g.dataFile
		} else {
			cfg.DataFile = g.dataFile
		}
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = g.logFormat
	}
	return cfg.Validate()
}

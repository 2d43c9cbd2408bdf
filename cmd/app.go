package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/marcus/jot/internal/config"
	"github.com/marcus/jot/internal/logging"
	"github.com/marcus/jot/internal/output"
	"github.com/marcus/jot/internal/repository"
	"github.com/marcus/jot/internal/session"
	"github.com/marcus/jot/internal/workdir"
	"github.com/spf13/cobra"
)

// app bundles what a task command needs: configuration, logger, the open
// store and a session over it.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   repository.Store
	session *session.Session
}

// configPath returns the config file in effect for home.
func configPath(home string) string {
	if globals.configFile != "" {
		return globals.configFile
	}
	return config.Path(home)
}

// loadConfig resolves the home directory and layers config file,
// environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	home, err := workdir.Home()
	if err != nil {
		output.Error("%v", err)
		return nil, err
	}
	cfg, err := config.Load(home, configPath(home))
	if err != nil {
		output.Error("%v", err)
		return nil, err
	}
	if err := globals.apply(cmd.Flags(), cfg); err != nil {
		output.Error("%v", err)
		return nil, err
	}
	return cfg, nil
}

// openApp loads configuration, opens the store and starts a session.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogOptions())

	store, err := repository.Open(cfg.Storage.Backend, cfg.StoragePath())
	if err != nil {
		output.Error("%v", err)
		return nil, fmt.Errorf("open store: %w", err)
	}

	sess := session.Open(store, session.Options{
		RelativeDates: cfg.Dates.Relative,
		Logger:        logger,
	})
	return &app{cfg: cfg, logger: logger, store: store, session: sess}, nil
}

// Close releases the store.
func (a *app) Close() error {
	return a.store.Close()
}

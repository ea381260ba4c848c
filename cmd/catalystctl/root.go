package main

import (
	"github.com/catalyst/backend/internal/config"
	"github.com/catalyst/backend/internal/logging"
	"github.com/catalyst/backend/internal/repository"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share once the root command has run.
type app struct {
	databaseURL string
	store       *repository.Store
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "catalystctl",
		Short:        "Triage project submissions and contact messages",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.databaseURL, "database", "", "database URL (defaults to DATABASE_URL)")

	root.AddCommand(
		newStatsCmd(a),
		newProjectsCmd(a),
		newContactsCmd(a),
		newHashPasswordCmd(),
	)
	return root
}

// open connects to the configured database on first use.
func (a *app) open(cmd *cobra.Command) (*repository.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, "text")
	url := cfg.DatabaseURL
	if a.databaseURL != "" {
		url = a.databaseURL
	}
	store, err := repository.Open(cmd.Context(), url, cfg.AutoMigrate)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

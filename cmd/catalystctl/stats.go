package main

import (
	"fmt"

	"github.com/catalyst/backend/internal/service"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			stats := service.NewStatsService(store.Projects, store.Contacts)
			out := cmd.OutOrStdout()
			renderProjectStats(out, stats.ProjectStats(cmd.Context()))
			fmt.Fprintln(out)
			renderContactStats(out, stats.ContactStats(cmd.Context()))
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/service"
	"github.com/spf13/cobra"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "List and triage project submissions",
	}
	cmd.AddCommand(newProjectsListCmd(a), newProjectsMarkCmd(a))
	return cmd
}

type projectListFlags struct {
	status, projectType, timeline, search string
	today                                 bool
	limit                                 int
}

func newProjectsListCmd(a *app) *cobra.Command {
	var f projectListFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter(time.Now())
			if err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			svc := service.NewProjectService(store.Projects)
			total, err := svc.Count(cmd.Context(), filter)
			if err != nil {
				return err
			}
			filter.Limit = f.limit
			projects, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderProjects(cmd.OutOrStdout(), projects, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.status, "status", "", "filter by status")
	cmd.Flags().StringVar(&f.projectType, "type", "", "filter by project type")
	cmd.Flags().StringVar(&f.timeline, "timeline", "", "filter by timeline")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "search title, client, email, company and phone")
	cmd.Flags().BoolVar(&f.today, "today", false, "only submissions from today")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 25, "maximum rows to print")
	return cmd
}

func (f projectListFlags) filter(now time.Time) (model.ProjectFilter, error) {
	filter := model.ProjectFilter{Search: strings.TrimSpace(f.search)}
	if f.status != "" {
		s, err := model.ParseProjectStatus(f.status)
		if err != nil {
			return filter, fmt.Errorf("--status: %w", err)
		}
		filter.Status = &s
	}
	if f.projectType != "" {
		t, err := model.ParseProjectType(f.projectType)
		if err != nil {
			return filter, fmt.Errorf("--type: %w", err)
		}
		filter.ProjectType = &t
	}
	if f.timeline != "" {
		t, err := model.ParseTimeline(f.timeline)
		if err != nil {
			return filter, fmt.Errorf("--timeline: %w", err)
		}
		filter.Timeline = &t
	}
	if f.today {
		d := model.Day(now)
		filter.Submitted = &d
	}
	return filter, nil
}

func newProjectsMarkCmd(a *app) *cobra.Command {
	names := make([]string, len(service.ProjectActions))
	for i, act := range service.ProjectActions {
		names[i] = string(act)
	}
	return &cobra.Command{
		Use:       "mark <action> <id>...",
		Short:     "Apply a status action to submissions",
		Long:      "Actions: " + strings.Join(names, ", "),
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			res, err := service.NewProjectService(store.Projects).
				ApplyAction(cmd.Context(), service.ProjectAction(args[0]), ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			id, err := strconv.ParseInt(strings.TrimPrefix(part, "#"), 10, 64)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("invalid id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

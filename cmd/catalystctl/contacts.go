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

func newContactsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"c"},
		Short:   "List and triage contact messages",
	}
	cmd.AddCommand(newContactsListCmd(a), newContactsMarkCmd(a))
	return cmd
}

type contactListFlags struct {
	read, archived, search string
	today                  bool
	limit                  int
}

func newContactsListCmd(a *app) *cobra.Command {
	var f contactListFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(time.Now())
			if err != nil {
				return err
			}
			store, err := a.open(cmd)
			if err != nil {
				return err
			}
			svc := service.NewContactService(store.Contacts)
			total, err := svc.Count(cmd.Context(), opts)
			if err != nil {
				return err
			}
			opts.Limit = f.limit
			messages, err := svc.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderMessages(cmd.OutOrStdout(), messages, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.read, "read", "", "filter by read flag (true/false)")
	cmd.Flags().StringVar(&f.archived, "archived", "", "filter by archived flag (true/false)")
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "search name, email, subject and message")
	cmd.Flags().BoolVar(&f.today, "today", false, "only messages from today")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 25, "maximum rows to print")
	return cmd
}

func (f contactListFlags) options(now time.Time) (model.ContactListOptions, error) {
	opts := model.ContactListOptions{Search: strings.TrimSpace(f.search)}
	var err error
	if opts.IsRead, err = optionalBool("--read", f.read); err != nil {
		return opts, err
	}
	if opts.IsArchived, err = optionalBool("--archived", f.archived); err != nil {
		return opts, err
	}
	if f.today {
		d := model.Day(now)
		opts.Submitted = &d
	}
	return opts, nil
}

func optionalBool(flag, s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not true or false", flag, s)
	}
	return &b, nil
}

func newContactsMarkCmd(a *app) *cobra.Command {
	names := make([]string, len(service.ContactActions))
	for i, act := range service.ContactActions {
		names[i] = string(act)
	}
	return &cobra.Command{
		Use:       "mark <action> <id>...",
		Short:     "Apply a read or archive action to messages",
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
			res, err := service.NewContactService(store.Contacts).
				ApplyAction(cmd.Context(), service.ContactAction(args[0]), ids)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

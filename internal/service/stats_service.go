package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// recentLimit is how many of each record type the dashboard shows.
const recentLimit = 5

// StatsService computes the dashboard counters. Figures are recomputed on every
// call. A storage failure yields all-zero figures and is logged, never returned.
type StatsService interface {
	ProjectStats(ctx context.Context) model.ProjectStats
	ContactStats(ctx context.Context) model.ContactStats
	Dashboard(ctx context.Context) model.Dashboard
}

type statsService struct {
	projects repository.ProjectSubmissionRepository
	contacts repository.ContactMessageRepository
	now      func() time.Time
}

// NewStatsService creates a StatsService reading from the given repositories.
func NewStatsService(projects repository.ProjectSubmissionRepository, contacts repository.ContactMessageRepository) StatsService {
	return &statsService{projects: projects, contacts: contacts, now: time.Now}
}

func (s *statsService) ProjectStats(ctx context.Context) model.ProjectStats {
	stats, err := s.projectStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "project stats unavailable", "error", err)
		return zeroProjectStats()
	}
	return stats
}

func (s *statsService) projectStats(ctx context.Context) (model.ProjectStats, error) {
	var stats model.ProjectStats
	var err error

	if stats.Total, err = s.projects.Count(ctx, model.ProjectFilter{}); err != nil {
		return stats, err
	}
	pending := model.StatusPending
	if stats.Pending, err = s.projects.Count(ctx, model.ProjectFilter{Status: &pending}); err != nil {
		return stats, err
	}
	today := model.Day(s.now())
	if stats.Today, err = s.projects.Count(ctx, model.ProjectFilter{Submitted: &today}); err != nil {
		return stats, err
	}
	totals, err := s.projects.BudgetTotals(ctx)
	if err != nil {
		return stats, err
	}
	stats.TotalBudget = totals.Sum.Round(2)
	stats.AvgBudget = decimal.Zero
	if totals.Count > 0 {
		stats.AvgBudget = totals.Sum.DivRound(decimal.NewFromInt(totals.Count), 2)
	}
	return stats, nil
}

func zeroProjectStats() model.ProjectStats {
	return model.ProjectStats{TotalBudget: decimal.Zero, AvgBudget: decimal.Zero}
}

func (s *statsService) ContactStats(ctx context.Context) model.ContactStats {
	stats, err := s.contactStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "contact stats unavailable", "error", err)
		return model.ContactStats{}
	}
	return stats
}

func (s *statsService) contactStats(ctx context.Context) (model.ContactStats, error) {
	var stats model.ContactStats
	var err error

	if stats.Total, err = s.contacts.Count(ctx, model.ContactListOptions{}); err != nil {
		return stats, err
	}
	unread := false
	if stats.Unread, err = s.contacts.Count(ctx, model.ContactListOptions{IsRead: &unread}); err != nil {
		return stats, err
	}
	archived := true
	if stats.Archived, err = s.contacts.Count(ctx, model.ContactListOptions{IsArchived: &archived}); err != nil {
		return stats, err
	}
	today := model.Day(s.now())
	if stats.Today, err = s.contacts.Count(ctx, model.ContactListOptions{Submitted: &today}); err != nil {
		return stats, err
	}
	return stats, nil
}

// Dashboard combines both stats with the most recent records of each kind.
func (s *statsService) Dashboard(ctx context.Context) model.Dashboard {
	d := model.Dashboard{
		ProjectStats:   s.ProjectStats(ctx),
		ContactStats:   s.ContactStats(ctx),
		RecentProjects: []*model.ProjectSubmission{},
		RecentMessages: []*model.ContactMessage{},
	}

	if projects, err := s.projects.List(ctx, model.ProjectFilter{Limit: recentLimit}); err != nil {
		slog.WarnContext(ctx, "recent projects unavailable", "error", err)
	} else if projects != nil {
		d.RecentProjects = projects
	}
	if messages, err := s.contacts.List(ctx, model.ContactListOptions{Limit: recentLimit}); err != nil {
		slog.WarnContext(ctx, "recent messages unavailable", "error", err)
	} else if messages != nil {
		d.RecentMessages = messages
	}
	return d
}

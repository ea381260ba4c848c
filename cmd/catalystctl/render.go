package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/catalyst/backend/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle  = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("#9ca3af"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	unreadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
)

// statusBadge renders a status label in its badge colour.
func statusBadge(s model.ProjectStatus) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Color())).
		Width(10).
		Render(s.Label())
}

func cell(width int, s string) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}

func writeStat(w io.Writer, label string, value any) {
	fmt.Fprintln(w, labelStyle.Render(label)+valueStyle.Render(fmt.Sprint(value)))
}

func renderProjectStats(w io.Writer, s model.ProjectStats) {
	fmt.Fprintln(w, headerStyle.Render("Projects"))
	writeStat(w, "Total", s.Total)
	writeStat(w, "Pending", s.Pending)
	writeStat(w, "Today", s.Today)
	writeStat(w, "Total budget", "$"+s.TotalBudget.StringFixed(2))
	writeStat(w, "Average budget", "$"+s.AvgBudget.StringFixed(2))
}

func renderContactStats(w io.Writer, s model.ContactStats) {
	fmt.Fprintln(w, headerStyle.Render("Messages"))
	writeStat(w, "Total", s.Total)
	writeStat(w, "Unread", s.Unread)
	writeStat(w, "Archived", s.Archived)
	writeStat(w, "Today", s.Today)
}

func renderProjects(w io.Writer, projects []*model.ProjectSubmission, total int64) {
	if len(projects) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("No project submissions."))
		return
	}
	for _, p := range projects {
		fmt.Fprintln(w, strings.Join([]string{
			cell(6, fmt.Sprintf("#%d", p.ID)),
			statusBadge(p.Status),
			cell(28, p.ProjectTitle),
			cell(20, p.ClientName),
			cell(12, p.ProjectType.Label()),
			cell(12, "$"+p.Budget.StringFixed(2)),
			subtleStyle.Render(p.SubmittedAt.Format("2006-01-02 15:04")),
		}, " "))
	}
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("%d of %d shown", len(projects), total)))
}

func renderMessages(w io.Writer, messages []*model.ContactMessage, total int64) {
	if len(messages) == 0 {
		fmt.Fprintln(w, subtleStyle.Render("No contact messages."))
		return
	}
	for _, m := range messages {
		flag := cell(9, "")
		switch {
		case m.IsArchived:
			flag = subtleStyle.Width(9).Render("archived")
		case !m.IsRead:
			flag = unreadStyle.Width(9).Render("unread")
		}
		fmt.Fprintln(w, strings.Join([]string{
			cell(6, fmt.Sprintf("#%d", m.ID)),
			flag,
			cell(28, m.Subject),
			cell(20, m.Name),
			cell(28, m.Email),
			subtleStyle.Render(m.SubmittedAt.Format("2006-01-02 15:04")),
		}, " "))
	}
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("%d of %d shown", len(messages), total)))
}

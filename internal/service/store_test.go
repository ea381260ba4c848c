package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *repository.Store {
	t.Helper()
	s, err := repository.Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "catalyst.db"), true)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func seedSubmission(t *testing.T, s *repository.Store, title, budget string, submitted time.Time) *model.ProjectSubmission {
	t.Helper()
	sub := &model.ProjectSubmission{
		ProjectType:        model.ProjectTypeWeb,
		ClientName:         "Jane Client",
		Email:              "jane@example.com",
		ProjectTitle:       title,
		ProjectDescription: "A new marketing site",
		Budget:             decimal.RequireFromString(budget),
		Timeline:           model.TimelineStandard,
		SubmittedAt:        submitted,
	}
	if err := s.Projects.Create(context.Background(), sub); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return sub
}

// editInterleaver runs a bulk action right before the wrapped Edit reaches the store.
type editInterleaver struct {
	repository.ProjectSubmissionRepository
	before func()
}

func (r editInterleaver) Edit(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error) {
	r.before()
	return r.ProjectSubmissionRepository.Edit(ctx, id, upd, at)
}

func TestProjectService_Update_KeepsConcurrentBulkStatus(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	sub := seedSubmission(t, store, "Contended", "500", fixedNow)
	bulk := NewProjectService(store.Projects)

	svc := &ProjectServiceImpl{
		repo: editInterleaver{
			ProjectSubmissionRepository: store.Projects,
			before: func() {
				res, err := bulk.ApplyAction(ctx, ActionMarkAccepted, []int64{sub.ID})
				if err != nil || res.Updated != 1 {
					t.Errorf("bulk action = %+v, %v", res, err)
				}
			},
		},
		now: clock,
	}

	notes := "called client"
	got, err := svc.Update(ctx, sub.ID, model.ProjectUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != model.StatusAccepted || got.Notes != "called client" {
		t.Errorf("Update returned status %q notes %q", got.Status, got.Notes)
	}

	stored, err := store.Projects.GetByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != model.StatusAccepted || stored.Notes != "called client" {
		t.Errorf("stored status %q notes %q, want accepted / called client", stored.Status, stored.Notes)
	}
}

func TestStatsService_RepeatedReadsAgree(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	seedSubmission(t, store, "One", "1000.00", fixedNow)
	seedSubmission(t, store, "Two", "250.50", fixedNow.Add(-48*time.Hour))
	msg := &model.ContactMessage{Name: "Sam", Email: "sam@example.com", Subject: "Hi", Message: "Hello", SubmittedAt: fixedNow}
	if err := store.Contacts.Create(ctx, msg); err != nil {
		t.Fatalf("create message: %v", err)
	}

	stats := &statsService{projects: store.Projects, contacts: store.Contacts, now: clock}

	p1, p2 := stats.ProjectStats(ctx), stats.ProjectStats(ctx)
	if p1.Total != p2.Total || p1.Pending != p2.Pending || p1.Today != p2.Today ||
		!p1.TotalBudget.Equal(p2.TotalBudget) || !p1.AvgBudget.Equal(p2.AvgBudget) {
		t.Errorf("project stats changed between reads: %+v then %+v", p1, p2)
	}
	if p1.Total != 2 || p1.Today != 1 || !p1.TotalBudget.Equal(decimal.RequireFromString("1250.5")) {
		t.Errorf("project stats = %+v", p1)
	}

	c1, c2 := stats.ContactStats(ctx), stats.ContactStats(ctx)
	if c1 != c2 {
		t.Errorf("contact stats changed between reads: %+v then %+v", c1, c2)
	}
	if c1.Total != 1 || c1.Unread != 1 || c1.Today != 1 {
		t.Errorf("contact stats = %+v", c1)
	}
}

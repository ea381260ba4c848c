package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type mockProjectService struct {
	listFunc   func(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error)
	countFunc  func(ctx context.Context, filter model.ProjectFilter) (int64, error)
	getFunc    func(ctx context.Context, id int64) (*model.ProjectSubmission, error)
	updateFunc func(ctx context.Context, id int64, upd model.ProjectUpdate) (*model.ProjectSubmission, error)
	actionFunc func(ctx context.Context, action service.ProjectAction, ids []int64) (model.BulkResult, error)
}

func (m *mockProjectService) List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockProjectService) Count(ctx context.Context, filter model.ProjectFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockProjectService) Get(ctx context.Context, id int64) (*model.ProjectSubmission, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.ProjectSubmission{ID: id}, nil
}

func (m *mockProjectService) Update(ctx context.Context, id int64, upd model.ProjectUpdate) (*model.ProjectSubmission, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return &model.ProjectSubmission{ID: id}, nil
}

func (m *mockProjectService) ApplyAction(ctx context.Context, action service.ProjectAction, ids []int64) (model.BulkResult, error) {
	if m.actionFunc != nil {
		return m.actionFunc(ctx, action, ids)
	}
	return model.BulkResult{}, nil
}

type mockContactService struct {
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	countFunc  func(ctx context.Context, opts model.ContactListOptions) (int64, error)
	getFunc    func(ctx context.Context, id int64) (*model.ContactMessage, error)
	updateFunc func(ctx context.Context, id int64, upd model.ContactUpdate) (*model.ContactMessage, error)
	actionFunc func(ctx context.Context, action service.ContactAction, ids []int64) (model.BulkResult, error)
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactService) Count(ctx context.Context, opts model.ContactListOptions) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, opts)
	}
	return 0, nil
}

func (m *mockContactService) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &model.ContactMessage{ID: id}, nil
}

func (m *mockContactService) Update(ctx context.Context, id int64, upd model.ContactUpdate) (*model.ContactMessage, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, upd)
	}
	return &model.ContactMessage{ID: id}, nil
}

func (m *mockContactService) ApplyAction(ctx context.Context, action service.ContactAction, ids []int64) (model.BulkResult, error) {
	if m.actionFunc != nil {
		return m.actionFunc(ctx, action, ids)
	}
	return model.BulkResult{}, nil
}

type mockStatsService struct {
	projectStats model.ProjectStats
	contactStats model.ContactStats
	dashboard    model.Dashboard
}

func (m *mockStatsService) ProjectStats(ctx context.Context) model.ProjectStats {
	return m.projectStats
}
func (m *mockStatsService) ContactStats(ctx context.Context) model.ContactStats {
	return m.contactStats
}
func (m *mockStatsService) Dashboard(ctx context.Context) model.Dashboard { return m.dashboard }

// fixedNow is 2024-03-10 15:00 UTC.
var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// withURLParam attaches a chi route parameter to r, as the router would.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

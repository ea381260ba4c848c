package service

import (
	"context"
	"time"

	"github.com/catalyst/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockProjectRepo: func-field stub of ProjectSubmissionRepository
// ---------------------------------------------------------------------------

type mockProjectRepo struct {
	createFunc       func(ctx context.Context, sub *model.ProjectSubmission) error
	getByIDFunc      func(ctx context.Context, id int64) (*model.ProjectSubmission, error)
	listFunc         func(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error)
	countFunc        func(ctx context.Context, filter model.ProjectFilter) (int64, error)
	editFunc         func(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error)
	setStatusFunc    func(ctx context.Context, ids []int64, status model.ProjectStatus, at time.Time) (int64, error)
	budgetTotalsFunc func(ctx context.Context) (model.BudgetTotals, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, sub *model.ProjectSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*model.ProjectSubmission, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepo) List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockProjectRepo) Count(ctx context.Context, filter model.ProjectFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockProjectRepo) Edit(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error) {
	if m.editFunc != nil {
		return m.editFunc(ctx, id, upd, at)
	}
	return nil, nil
}

func (m *mockProjectRepo) SetStatus(ctx context.Context, ids []int64, status model.ProjectStatus, at time.Time) (int64, error) {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, ids, status, at)
	}
	return int64(len(ids)), nil
}

func (m *mockProjectRepo) BudgetTotals(ctx context.Context) (model.BudgetTotals, error) {
	if m.budgetTotalsFunc != nil {
		return m.budgetTotalsFunc(ctx)
	}
	return model.BudgetTotals{}, nil
}

// ---------------------------------------------------------------------------
// mockContactRepo: func-field stub of ContactMessageRepository
// ---------------------------------------------------------------------------

type mockContactRepo struct {
	createFunc      func(ctx context.Context, msg *model.ContactMessage) error
	getByIDFunc     func(ctx context.Context, id int64) (*model.ContactMessage, error)
	listFunc        func(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	countFunc       func(ctx context.Context, opts model.ContactListOptions) (int64, error)
	editFunc        func(ctx context.Context, id int64, upd model.ContactUpdate, at time.Time) (*model.ContactMessage, error)
	setReadFunc     func(ctx context.Context, ids []int64, read bool, at time.Time) (int64, error)
	setArchivedFunc func(ctx context.Context, ids []int64, archived bool, at time.Time) (int64, error)
}

func (m *mockContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, id int64) (*model.ContactMessage, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockContactRepo) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockContactRepo) Count(ctx context.Context, opts model.ContactListOptions) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, opts)
	}
	return 0, nil
}

func (m *mockContactRepo) Edit(ctx context.Context, id int64, upd model.ContactUpdate, at time.Time) (*model.ContactMessage, error) {
	if m.editFunc != nil {
		return m.editFunc(ctx, id, upd, at)
	}
	return nil, nil
}

func (m *mockContactRepo) SetRead(ctx context.Context, ids []int64, read bool, at time.Time) (int64, error) {
	if m.setReadFunc != nil {
		return m.setReadFunc(ctx, ids, read, at)
	}
	return int64(len(ids)), nil
}

func (m *mockContactRepo) SetArchived(ctx context.Context, ids []int64, archived bool, at time.Time) (int64, error) {
	if m.setArchivedFunc != nil {
		return m.setArchivedFunc(ctx, ids, archived, at)
	}
	return int64(len(ids)), nil
}

var fixedNow = time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

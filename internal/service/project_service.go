package service

import (
	"context"

	"github.com/catalyst/backend/internal/model"
)

// ProjectService is the staff-facing triage API for project submissions.
type ProjectService interface {
	List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error)
	Count(ctx context.Context, filter model.ProjectFilter) (int64, error)
	// Get returns repository.ErrNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*model.ProjectSubmission, error)
	// Update applies a single-record edit and returns the stored submission.
	Update(ctx context.Context, id int64, upd model.ProjectUpdate) (*model.ProjectSubmission, error)
	// ApplyAction runs a bulk status action. Ids that match nothing are ignored.
	ApplyAction(ctx context.Context, action ProjectAction, ids []int64) (model.BulkResult, error)
}

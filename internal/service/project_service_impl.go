package service

import (
	"context"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
)

// ProjectServiceImpl implements ProjectService on top of a ProjectSubmissionRepository.
type ProjectServiceImpl struct {
	repo repository.ProjectSubmissionRepository
	now  func() time.Time
}

// NewProjectService creates a ProjectService backed by repo.
func NewProjectService(repo repository.ProjectSubmissionRepository) ProjectService {
	return &ProjectServiceImpl{repo: repo, now: time.Now}
}

func (s *ProjectServiceImpl) List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProjectServiceImpl) Count(ctx context.Context, filter model.ProjectFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

func (s *ProjectServiceImpl) Get(ctx context.Context, id int64) (*model.ProjectSubmission, error) {
	return s.repo.GetByID(ctx, id)
}

// Update writes only the fields present in upd, so it never undoes a bulk
// action that ran since the caller last read the submission.
func (s *ProjectServiceImpl) Update(ctx context.Context, id int64, upd model.ProjectUpdate) (*model.ProjectSubmission, error) {
	return s.repo.Edit(ctx, id, upd, s.now())
}

func (s *ProjectServiceImpl) ApplyAction(ctx context.Context, action ProjectAction, ids []int64) (model.BulkResult, error) {
	status, err := action.Target()
	if err != nil {
		return model.BulkResult{}, err
	}
	n, err := s.repo.SetStatus(ctx, ids, status, s.now())
	if err != nil {
		return model.BulkResult{}, err
	}
	return model.BulkResult{Updated: n, Message: projectActionMessage(n, status)}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactMessageRepository
	now  func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactMessageRepository) ContactService {
	return &contactServiceImpl{repo: repo, now: time.Now}
}

func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

func (s *contactServiceImpl) Count(ctx context.Context, opts model.ContactListOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}

func (s *contactServiceImpl) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contactServiceImpl) Update(ctx context.Context, id int64, upd model.ContactUpdate) (*model.ContactMessage, error) {
	return s.repo.Edit(ctx, id, upd, s.now())
}

// ApplyAction flips one flag on every listed message. Archiving leaves is_read alone.
func (s *contactServiceImpl) ApplyAction(ctx context.Context, action ContactAction, ids []int64) (model.BulkResult, error) {
	if !action.valid() {
		return model.BulkResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}

	now := s.now()
	var (
		n   int64
		err error
	)
	switch action {
	case ActionMarkRead, ActionMarkUnread:
		n, err = s.repo.SetRead(ctx, ids, action == ActionMarkRead, now)
	case ActionArchive, ActionUnarchive:
		n, err = s.repo.SetArchived(ctx, ids, action == ActionArchive, now)
	}
	if err != nil {
		return model.BulkResult{}, err
	}
	return model.BulkResult{Updated: n, Message: contactActionMessage(n, action)}, nil
}

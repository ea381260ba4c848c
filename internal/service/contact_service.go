package service

import (
	"context"

	"github.com/catalyst/backend/internal/model"
)

// ContactService is the staff-facing API for contact form messages.
type ContactService interface {
	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	Count(ctx context.Context, opts model.ContactListOptions) (int64, error)
	Get(ctx context.Context, id int64) (*model.ContactMessage, error)
	// Update changes the read and archived flags of one message.
	Update(ctx context.Context, id int64, upd model.ContactUpdate) (*model.ContactMessage, error)
	ApplyAction(ctx context.Context, action ContactAction, ids []int64) (model.BulkResult, error)
}

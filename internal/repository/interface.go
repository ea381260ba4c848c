package repository

import (
	"context"
	"time"

	"github.com/catalyst/backend/internal/model"
)

// DB checks that the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// ProjectSubmissionRepository persists project catalyst submissions.
type ProjectSubmissionRepository interface {
	// Create inserts sub and populates its ID. Zero timestamps default to now;
	// a zero SubmittedAt defaults to CreatedAt.
	Create(ctx context.Context, sub *model.ProjectSubmission) error
	GetByID(ctx context.Context, id int64) (*model.ProjectSubmission, error)
	// List returns matching submissions, newest submitted_at first.
	List(ctx context.Context, filter model.ProjectFilter) ([]*model.ProjectSubmission, error)
	Count(ctx context.Context, filter model.ProjectFilter) (int64, error)
	// Edit writes only the supplied fields of one submission plus updated_at,
	// and returns the stored row. Returns ErrNotFound for an unknown ID.
	Edit(ctx context.Context, id int64, upd model.ProjectUpdate, at time.Time) (*model.ProjectSubmission, error)
	// SetStatus moves every listed submission to status and returns how many matched.
	SetStatus(ctx context.Context, ids []int64, status model.ProjectStatus, at time.Time) (int64, error)
	BudgetTotals(ctx context.Context) (model.BudgetTotals, error)
}

// ContactMessageRepository persists contact form messages.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*model.ContactMessage, error)
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	Count(ctx context.Context, opts model.ContactListOptions) (int64, error)
	Edit(ctx context.Context, id int64, upd model.ContactUpdate, at time.Time) (*model.ContactMessage, error)
	SetRead(ctx context.Context, ids []int64, read bool, at time.Time) (int64, error)
	SetArchived(ctx context.Context, ids []int64, archived bool, at time.Time) (int64, error)
}

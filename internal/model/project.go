package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectSubmission is a request sent through the multi-step project catalyst form.
type ProjectSubmission struct {
	ID                 int64           `json:"id"`
	ProjectType        ProjectType     `json:"project_type" validate:"required"`
	ClientName         string          `json:"client_name" validate:"required,max=200"`
	Email              string          `json:"email" validate:"required,email,max=254"`
	Company            string          `json:"company,omitempty" validate:"max=200"`
	Phone              string          `json:"phone,omitempty" validate:"max=20"`
	ProjectTitle       string          `json:"project_title" validate:"required,max=200"`
	ProjectDescription string          `json:"project_description" validate:"required"`
	Budget             decimal.Decimal `json:"budget"`
	Timeline           Timeline        `json:"timeline" validate:"required"`
	ReferenceLinks     string          `json:"reference_links,omitempty"`
	HeardFrom          HeardFrom       `json:"heard_from,omitempty"`
	AdditionalNotes    string          `json:"additional_notes,omitempty"`
	AttachedFiles      []string        `json:"attached_files,omitempty" validate:"dive,required,max=500"`

	Status ProjectStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"` // internal only

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// String mirrors the label used in staff listings.
func (p *ProjectSubmission) String() string {
	return p.ProjectTitle + " - " + p.ClientName
}

// ProjectFilter narrows a project listing. Nil / zero fields do not filter.
type ProjectFilter struct {
	Status      *ProjectStatus
	ProjectType *ProjectType
	Timeline    *Timeline
	Submitted   *DateRange
	// Search matches project_title, client_name, email, company and phone.
	Search string
	Limit  int
	Offset int
}

// ProjectUpdate is a staff edit of a single submission. Nil fields are left unchanged.
type ProjectUpdate struct {
	Status *ProjectStatus
	Notes  *string
}

// ProjectStats are the dashboard counters for project submissions.
type ProjectStats struct {
	Total       int64           `json:"total"`
	Pending     int64           `json:"pending"`
	Today       int64           `json:"today"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	AvgBudget   decimal.Decimal `json:"avg_budget"`
}

// BudgetTotals is the raw aggregate the store returns for budget statistics.
type BudgetTotals struct {
	Sum   decimal.Decimal
	Count int64
}

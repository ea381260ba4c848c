package model

import "time"

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`

	// IsRead and IsArchived are independent; archiving never marks a message read.
	IsRead     bool `json:"is_read"`
	IsArchived bool `json:"is_archived"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (m *ContactMessage) String() string {
	return m.Subject + " - " + m.Name
}

// ContactListOptions carries filter and pagination parameters for listing contact messages.
type ContactListOptions struct {
	IsRead     *bool
	IsArchived *bool
	Submitted  *DateRange
	// Search matches name, email, subject and message.
	Search string
	Limit  int
	Offset int
}

// ContactUpdate is a staff edit of a single message. Nil fields are left unchanged.
type ContactUpdate struct {
	IsRead     *bool
	IsArchived *bool
}

// ContactStats are the dashboard counters for contact messages.
type ContactStats struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Archived int64 `json:"archived"`
	Today    int64 `json:"today"`
}

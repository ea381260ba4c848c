package model

import "time"

// DateRange is a half-open [From, To) interval on submitted_at.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Day returns the calendar day containing t, in t's location.
func Day(t time.Time) DateRange {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return DateRange{From: from, To: from.AddDate(0, 0, 1)}
}

// Dashboard is everything the staff landing page shows.
type Dashboard struct {
	ProjectStats   ProjectStats         `json:"project_stats"`
	ContactStats   ContactStats         `json:"contact_stats"`
	RecentProjects []*ProjectSubmission `json:"recent_projects"`
	RecentMessages []*ContactMessage    `json:"recent_messages"`
}

// BulkResult reports the outcome of a staff bulk action.
type BulkResult struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}

// IntakeResult is the response of the public intake endpoints.
// Errors carries field-level messages when validation failed.
type IntakeResult struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	ID      int64               `json:"id,omitempty"`
}

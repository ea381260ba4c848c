package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
	"github.com/catalyst/backend/internal/validate"
)

const (
	projectSubmittedMessage = "Project submitted successfully!"
	contactSentMessage      = "Message sent successfully!"
)

// IntakeService accepts submissions from the public forms.
// It never returns a Go error: every outcome is reported in the IntakeResult.
type IntakeService interface {
	SubmitProject(ctx context.Context, p validate.Payload) model.IntakeResult
	SubmitContact(ctx context.Context, p validate.Payload) model.IntakeResult
}

type intakeService struct {
	projects repository.ProjectSubmissionRepository
	contacts repository.ContactMessageRepository
	now      func() time.Time
}

// NewIntakeService creates an IntakeService writing to the given repositories.
func NewIntakeService(projects repository.ProjectSubmissionRepository, contacts repository.ContactMessageRepository) IntakeService {
	return &intakeService{projects: projects, contacts: contacts, now: time.Now}
}

func (s *intakeService) SubmitProject(ctx context.Context, p validate.Payload) model.IntakeResult {
	sub, err := validate.ProjectSubmission(p)
	if err != nil {
		return Rejected(err)
	}

	now := s.now()
	sub.Status = model.StatusPending
	sub.Notes = ""
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = now
	}
	if err := s.projects.Create(ctx, sub); err != nil {
		slog.ErrorContext(ctx, "store project submission failed", "error", err)
		return Rejected(err)
	}

	slog.InfoContext(ctx, "project submission received", "id", sub.ID, "project_type", sub.ProjectType)
	return model.IntakeResult{Success: true, Message: projectSubmittedMessage}
}

func (s *intakeService) SubmitContact(ctx context.Context, p validate.Payload) model.IntakeResult {
	msg, err := validate.ContactMessage(p)
	if err != nil {
		return Rejected(err)
	}

	now := s.now()
	msg.IsRead = false
	msg.IsArchived = false
	msg.CreatedAt = now
	msg.UpdatedAt = now
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = now
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "store contact message failed", "error", err)
		return Rejected(err)
	}

	slog.InfoContext(ctx, "contact message received", "id", msg.ID)
	return model.IntakeResult{Success: true, Message: contactSentMessage, ID: msg.ID}
}

// Rejected converts a failure into an unsuccessful IntakeResult.
// Validation failures also carry their field errors.
func Rejected(err error) model.IntakeResult {
	res := model.IntakeResult{Success: false, Error: err.Error()}
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		res.Errors = verrs.Fields
	}
	return res
}

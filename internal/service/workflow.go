package service

import (
	"errors"
	"fmt"

	"github.com/catalyst/backend/internal/model"
)

// ErrUnknownAction is returned for a bulk action name outside the closed set.
var ErrUnknownAction = errors.New("unknown action")

// ProjectAction is a staff bulk action on project submissions.
type ProjectAction string

const (
	ActionMarkReviewed  ProjectAction = "mark_reviewed"
	ActionMarkContacted ProjectAction = "mark_contacted"
	ActionMarkAccepted  ProjectAction = "mark_accepted"
	ActionMarkRejected  ProjectAction = "mark_rejected"
)

// ProjectActions lists the project bulk actions in menu order.
var ProjectActions = []ProjectAction{
	ActionMarkReviewed, ActionMarkContacted, ActionMarkAccepted, ActionMarkRejected,
}

// Target is the status every selected submission moves to.
// Any status may move to any other; there is no terminal state.
func (a ProjectAction) Target() (model.ProjectStatus, error) {
	switch a {
	case ActionMarkReviewed:
		return model.StatusReviewed, nil
	case ActionMarkContacted:
		return model.StatusContacted, nil
	case ActionMarkAccepted:
		return model.StatusAccepted, nil
	case ActionMarkRejected:
		return model.StatusRejected, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
}

func projectActionMessage(n int64, status model.ProjectStatus) string {
	return fmt.Sprintf("%d project(s) marked as %s.", n, status)
}

// ContactAction is a staff bulk action on contact messages.
type ContactAction string

const (
	ActionMarkRead   ContactAction = "mark_read"
	ActionMarkUnread ContactAction = "mark_unread"
	ActionArchive    ContactAction = "archive"
	ActionUnarchive  ContactAction = "unarchive"
)

var ContactActions = []ContactAction{
	ActionMarkRead, ActionMarkUnread, ActionArchive, ActionUnarchive,
}

func (a ContactAction) valid() bool {
	for _, c := range ContactActions {
		if a == c {
			return true
		}
	}
	return false
}

func contactActionMessage(n int64, a ContactAction) string {
	switch a {
	case ActionMarkRead:
		return fmt.Sprintf("%d message(s) marked as read.", n)
	case ActionMarkUnread:
		return fmt.Sprintf("%d message(s) marked as unread.", n)
	case ActionArchive:
		return fmt.Sprintf("%d message(s) archived.", n)
	default:
		return fmt.Sprintf("%d message(s) unarchived.", n)
	}
}

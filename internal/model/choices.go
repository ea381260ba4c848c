package model

import "fmt"

// ProjectType is the kind of work requested in a project submission.
type ProjectType string

const (
	ProjectTypeWeb     ProjectType = "web"
	ProjectTypeUIUX    ProjectType = "uiux"
	ProjectTypeBrand   ProjectType = "brand"
	ProjectTypeGraphic ProjectType = "graphic"
	ProjectTypeOther   ProjectType = "other"
)

// ProjectTypes lists every project type in display order.
var ProjectTypes = []ProjectType{
	ProjectTypeWeb, ProjectTypeUIUX, ProjectTypeBrand, ProjectTypeGraphic, ProjectTypeOther,
}

// Label returns the human-readable name shown to staff.
func (t ProjectType) Label() string {
	switch t {
	case ProjectTypeWeb:
		return "Web Development"
	case ProjectTypeUIUX:
		return "UI/UX Design"
	case ProjectTypeBrand:
		return "Brand Identity"
	case ProjectTypeGraphic:
		return "Graphic Design"
	case ProjectTypeOther:
		return "Something Else"
	}
	return string(t)
}

// ParseProjectType returns the ProjectType for s or an error if s is not one of ProjectTypes.
func ParseProjectType(s string) (ProjectType, error) {
	for _, t := range ProjectTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", invalidChoice(s)
}

// Timeline is the delivery window the client asked for.
type Timeline string

const (
	TimelineUrgent   Timeline = "urgent"
	TimelineStandard Timeline = "standard"
	TimelineFlexible Timeline = "flexible"
)

var Timelines = []Timeline{TimelineUrgent, TimelineStandard, TimelineFlexible}

func (t Timeline) Label() string {
	switch t {
	case TimelineUrgent:
		return "Urgent (1-2 weeks)"
	case TimelineStandard:
		return "Standard (3-6 weeks)"
	case TimelineFlexible:
		return "Flexible (6+ weeks)"
	}
	return string(t)
}

func ParseTimeline(s string) (Timeline, error) {
	for _, t := range Timelines {
		if string(t) == s {
			return t, nil
		}
	}
	return "", invalidChoice(s)
}

// HeardFrom records how the client found the studio. The zero value means "not given".
type HeardFrom string

const (
	HeardFromSearch    HeardFrom = "search"
	HeardFromSocial    HeardFrom = "social"
	HeardFromReferral  HeardFrom = "referral"
	HeardFromPortfolio HeardFrom = "portfolio"
	HeardFromOther     HeardFrom = "other"
)

var HeardFromChoices = []HeardFrom{
	HeardFromSearch, HeardFromSocial, HeardFromReferral, HeardFromPortfolio, HeardFromOther,
}

func (h HeardFrom) Label() string {
	switch h {
	case HeardFromSearch:
		return "Search Engine"
	case HeardFromSocial:
		return "Social Media"
	case HeardFromReferral:
		return "Referral"
	case HeardFromPortfolio:
		return "Portfolio"
	case HeardFromOther:
		return "Other"
	}
	return string(h)
}

func ParseHeardFrom(s string) (HeardFrom, error) {
	for _, h := range HeardFromChoices {
		if string(h) == s {
			return h, nil
		}
	}
	return "", invalidChoice(s)
}

// ProjectStatus is the triage state of a project submission.
// Any status may move to any other; accepted and rejected are terminal by convention only.
type ProjectStatus string

const (
	StatusPending   ProjectStatus = "pending"
	StatusReviewed  ProjectStatus = "reviewed"
	StatusContacted ProjectStatus = "contacted"
	StatusAccepted  ProjectStatus = "accepted"
	StatusRejected  ProjectStatus = "rejected"
)

var ProjectStatuses = []ProjectStatus{
	StatusPending, StatusReviewed, StatusContacted, StatusAccepted, StatusRejected,
}

func (s ProjectStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending Review"
	case StatusReviewed:
		return "Reviewed"
	case StatusContacted:
		return "Contacted"
	case StatusAccepted:
		return "Project Accepted"
	case StatusRejected:
		return "Project Rejected"
	}
	return string(s)
}

// Color is the badge colour used for the status in staff views.
func (s ProjectStatus) Color() string {
	switch s {
	case StatusReviewed:
		return "#3b82f6"
	case StatusContacted:
		return "#f59e0b"
	case StatusAccepted:
		return "#10b981"
	case StatusRejected:
		return "#ef4444"
	}
	return "#9ca3af"
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, st := range ProjectStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", invalidChoice(s)
}

func invalidChoice(s string) error {
	return fmt.Errorf("%q is not a valid choice", s)
}

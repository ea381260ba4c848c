package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/repository"
	"github.com/catalyst/backend/internal/service"
	"github.com/catalyst/backend/internal/validate"
)

// AdminProjectHandler serves the staff triage endpoints for project submissions.
type AdminProjectHandler struct {
	projects service.ProjectService
	stats    service.StatsService
	now      func() time.Time
}

func NewAdminProjectHandler(projects service.ProjectService, stats service.StatsService) *AdminProjectHandler {
	return &AdminProjectHandler{projects: projects, stats: stats, now: time.Now}
}

type projectListResponse struct {
	Projects []*model.ProjectSubmission `json:"projects"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PerPage  int                        `json:"per_page"`
}

// List handles GET /api/admin/projects.
func (h *AdminProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	errs := queryErrors{}
	filter := model.ProjectFilter{
		Status:      choiceParam(q, "status", model.ParseProjectStatus, errs),
		ProjectType: choiceParam(q, "project_type", model.ParseProjectType, errs),
		Timeline:    choiceParam(q, "timeline", model.ParseTimeline, errs),
		Submitted:   parseSubmitted(q, h.now(), errs),
		Search:      strings.TrimSpace(q.Get("q")),
	}
	page := parsePage(q, errs)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "invalid_filter", Errors: errs})
		return
	}

	total, err := h.projects.Count(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "count projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	filter.Limit, filter.Offset = page.limit(), page.offset()
	projects, err := h.projects.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if projects == nil {
		projects = []*model.ProjectSubmission{}
	}
	writeJSON(w, http.StatusOK, projectListResponse{
		Projects: projects,
		Total:    total,
		Page:     page.Page,
		PerPage:  page.PerPage,
	})
}

// Stats handles GET /api/admin/projects/stats.
func (h *AdminProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.ProjectStats(r.Context()))
}

// Get handles GET /api/admin/projects/{id}.
func (h *AdminProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	p, err := h.projects.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "get project failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update handles PATCH /api/admin/projects/{id}.
func (h *AdminProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	payload, err := readAdminPayload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	upd, err := validate.ProjectUpdate(payload)
	if err != nil {
		if !writeValidationError(w, err) {
			writeError(w, http.StatusBadRequest, "validation_failed")
		}
		return
	}

	p, err := h.projects.Update(r.Context(), id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "update project failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	slog.InfoContext(r.Context(), "project updated", "id", id, "staff", staffUser(r))
	writeJSON(w, http.StatusOK, p)
}

// Actions handles POST /api/admin/projects/actions.
func (h *AdminProjectHandler) Actions(w http.ResponseWriter, r *http.Request) {
	req, err := readActionRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request", "message": err.Error()})
		return
	}

	res, err := h.projects.ApplyAction(r.Context(), service.ProjectAction(req.Action), req.IDs)
	if errors.Is(err, service.ErrUnknownAction) {
		writeError(w, http.StatusBadRequest, "unknown_action")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "project action failed", "action", req.Action, "error", err)
		writeError(w, http.StatusInternalServerError, "action_failed")
		return
	}
	slog.InfoContext(r.Context(), "project action applied", "action", req.Action, "updated", res.Updated, "staff", staffUser(r))
	writeJSON(w, http.StatusOK, res)
}

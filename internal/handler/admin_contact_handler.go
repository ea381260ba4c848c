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

// AdminContactHandler serves the staff endpoints for contact messages.
type AdminContactHandler struct {
	contacts service.ContactService
	stats    service.StatsService
	now      func() time.Time
}

func NewAdminContactHandler(contacts service.ContactService, stats service.StatsService) *AdminContactHandler {
	return &AdminContactHandler{contacts: contacts, stats: stats, now: time.Now}
}

type contactListResponse struct {
	Contacts []*model.ContactMessage `json:"contacts"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PerPage  int                     `json:"per_page"`
}

// List handles GET /api/admin/contacts.
func (h *AdminContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	errs := queryErrors{}
	opts := model.ContactListOptions{
		IsRead:     parseBoolParam(q, "is_read", errs),
		IsArchived: parseBoolParam(q, "is_archived", errs),
		Submitted:  parseSubmitted(q, h.now(), errs),
		Search:     strings.TrimSpace(q.Get("q")),
	}
	page := parsePage(q, errs)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "invalid_filter", Errors: errs})
		return
	}

	total, err := h.contacts.Count(r.Context(), opts)
	if err != nil {
		slog.ErrorContext(r.Context(), "count contact messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	opts.Limit, opts.Offset = page.limit(), page.offset()
	messages, err := h.contacts.List(r.Context(), opts)
	if err != nil {
		slog.ErrorContext(r.Context(), "list contact messages failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, contactListResponse{
		Contacts: messages,
		Total:    total,
		Page:     page.Page,
		PerPage:  page.PerPage,
	})
}

// Stats handles GET /api/admin/contacts/stats.
func (h *AdminContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.ContactStats(r.Context()))
}

// Get handles GET /api/admin/contacts/{id}.
func (h *AdminContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id")
		return
	}
	m, err := h.contacts.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "get contact message failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Update handles PATCH /api/admin/contacts/{id}.
func (h *AdminContactHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	upd, err := validate.ContactUpdate(payload)
	if err != nil {
		if !writeValidationError(w, err) {
			writeError(w, http.StatusBadRequest, "validation_failed")
		}
		return
	}

	m, err := h.contacts.Update(r.Context(), id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "update contact message failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}
	slog.InfoContext(r.Context(), "contact message updated", "id", id, "staff", staffUser(r))
	writeJSON(w, http.StatusOK, m)
}

// Actions handles POST /api/admin/contacts/actions.
func (h *AdminContactHandler) Actions(w http.ResponseWriter, r *http.Request) {
	req, err := readActionRequest(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request", "message": err.Error()})
		return
	}

	res, err := h.contacts.ApplyAction(r.Context(), service.ContactAction(req.Action), req.IDs)
	if errors.Is(err, service.ErrUnknownAction) {
		writeError(w, http.StatusBadRequest, "unknown_action")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "contact action failed", "action", req.Action, "error", err)
		writeError(w, http.StatusInternalServerError, "action_failed")
		return
	}
	slog.InfoContext(r.Context(), "contact action applied", "action", req.Action, "updated", res.Updated, "staff", staffUser(r))
	writeJSON(w, http.StatusOK, res)
}

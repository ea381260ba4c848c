package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/validate"
	"github.com/catalyst/backend/pkg/auth"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
	// maxPage keeps (page-1)*per_page far below int overflow.
	maxPage      = 1_000_000
	maxAdminBody = 64 << 10
)

// listPage is the parsed page / per_page query pair.
type listPage struct {
	Page    int
	PerPage int
}

func (p listPage) limit() int  { return p.PerPage }
func (p listPage) offset() int { return (p.Page - 1) * p.PerPage }

// queryErrors collects per-parameter problems in a listing query.
type queryErrors map[string][]string

func (q queryErrors) add(param, msg string) {
	q[param] = append(q[param], msg)
}

func parsePage(v url.Values, errs queryErrors) listPage {
	p := listPage{Page: 1, PerPage: defaultPerPage}
	if s := v.Get("page"); s != "" {
		switch n, err := strconv.Atoi(s); {
		case err != nil || n < 1:
			errs.add("page", "Must be a positive integer.")
		case n > maxPage:
			errs.add("page", fmt.Sprintf("Must be at most %d.", maxPage))
		default:
			p.Page = n
		}
	}
	if s := v.Get("per_page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.PerPage = min(n, maxPerPage)
		} else {
			errs.add("per_page", "Must be a positive integer.")
		}
	}
	return p
}

// parseSubmitted reads the submitted filter: "today" or a YYYY-MM-DD day in
// the server's local time zone.
func parseSubmitted(v url.Values, now time.Time, errs queryErrors) *model.DateRange {
	s := strings.TrimSpace(v.Get("submitted"))
	switch s {
	case "":
		return nil
	case "today":
		d := model.Day(now)
		return &d
	}
	t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		errs.add("submitted", `Use "today" or YYYY-MM-DD.`)
		return nil
	}
	d := model.Day(t)
	return &d
}

func parseBoolParam(v url.Values, key string, errs queryErrors) *bool {
	s := v.Get(key)
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		errs.add(key, "Must be true or false.")
		return nil
	}
	return &b
}

func choiceParam[T any](v url.Values, key string, parse func(string) (T, error), errs queryErrors) *T {
	s := v.Get(key)
	if s == "" {
		return nil
	}
	c, err := parse(s)
	if err != nil {
		errs.add(key, err.Error()+".")
		return nil
	}
	return &c
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// readAdminPayload decodes a JSON object body.
func readAdminPayload(w http.ResponseWriter, r *http.Request) (validate.Payload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAdminBody))
	if err != nil {
		return nil, err
	}
	return validate.Decode(body)
}

// actionRequest is the body of POST .../actions.
type actionRequest struct {
	Action string  `json:"action"`
	IDs    []int64 `json:"ids"`
}

var errNoIDs = errors.New("ids must not be empty")

func readActionRequest(w http.ResponseWriter, r *http.Request) (actionRequest, error) {
	var req actionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&req); err != nil {
		return req, err
	}
	if len(req.IDs) == 0 {
		return req, errNoIDs
	}
	return req, nil
}

// writeValidationError maps validation failures to 400 with field errors.
func writeValidationError(w http.ResponseWriter, err error) bool {
	var verrs *validate.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Error: "validation_failed", Errors: verrs.Fields})
		return true
	}
	return false
}

// staffUser names the signed-in staff member for audit logging.
func staffUser(r *http.Request) string {
	user, _ := auth.UserIDFromContext(r.Context())
	return user
}

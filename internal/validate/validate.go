// Package validate turns raw intake payloads into typed records.
//
// Checks run in three passes: the JSON shape of every known field, then
// normalization (trimming, enum parsing, budget and timestamp parsing), then
// struct rules on the resulting draft. A payload is either accepted whole or
// rejected with an *Errors describing every failing field.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Payload is a decoded JSON object. Numbers are kept as json.Number.
type Payload map[string]any

// ErrNotObject is returned by Decode when the body is not a JSON object.
var ErrNotObject = errors.New("payload must be a JSON object")

// Decode parses a request body into a Payload.
func Decode(body []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if p == nil {
		return nil, ErrNotObject
	}
	return p, nil
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProjectSubmission validates and normalizes a project catalyst payload.
// The returned draft has no id, status or timestamps beyond a caller-supplied submitted_at.
func ProjectSubmission(p Payload) (*model.ProjectSubmission, error) {
	errs := &Errors{}
	checkShape(projectSchema, p, errs)

	sub := &model.ProjectSubmission{
		ClientName:         text(p, "client_name", errs),
		Email:              text(p, "email", errs),
		Company:            text(p, "company", errs),
		Phone:              text(p, "phone", errs),
		ProjectTitle:       text(p, "project_title", errs),
		ProjectDescription: text(p, "project_description", errs),
		ReferenceLinks:     text(p, "reference_links", errs),
		AdditionalNotes:    text(p, "additional_notes", errs),
	}

	if s := text(p, "project_type", errs); s != "" {
		t, err := model.ParseProjectType(s)
		addChoiceErr(errs, "project_type", err)
		sub.ProjectType = t
	}
	if s := text(p, "timeline", errs); s != "" {
		t, err := model.ParseTimeline(s)
		addChoiceErr(errs, "timeline", err)
		sub.Timeline = t
	}
	if s := text(p, "heard_from", errs); s != "" {
		h, err := model.ParseHeardFrom(s)
		addChoiceErr(errs, "heard_from", err)
		sub.HeardFrom = h
	}

	if !errs.Has("budget") {
		v, ok := p["budget"]
		if !ok || v == nil || isBlank(v) {
			errs.add("budget", msgRequired)
		} else if b, err := ParseBudget(v); err != nil {
			errs.add("budget", err.Error())
		} else {
			sub.Budget = b
		}
	}

	if !errs.Has("attached_files") {
		sub.AttachedFiles = fileList(p["attached_files"])
	}
	sub.SubmittedAt = submittedAt(p, errs)

	checkStruct(sub, errs)
	checkEmailDomain(sub.Email, errs)

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return sub, nil
}

// ContactMessage validates and normalizes a contact form payload.
func ContactMessage(p Payload) (*model.ContactMessage, error) {
	errs := &Errors{}
	checkShape(contactSchema, p, errs)

	msg := &model.ContactMessage{
		Name:    text(p, "name", errs),
		Email:   text(p, "email", errs),
		Subject: text(p, "subject", errs),
		Message: text(p, "message", errs),
	}
	msg.SubmittedAt = submittedAt(p, errs)

	checkStruct(msg, errs)
	checkEmailDomain(msg.Email, errs)

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return msg, nil
}

// ProjectUpdate parses a staff edit of a submission (status and/or notes).
func ProjectUpdate(p Payload) (model.ProjectUpdate, error) {
	errs := &Errors{}
	checkShape(projectUpdateSchema, p, errs)

	var upd model.ProjectUpdate
	if _, ok := p["status"]; ok && !errs.Has("status") {
		st, err := model.ParseProjectStatus(text(p, "status", errs))
		if err != nil {
			addChoiceErr(errs, "status", err)
		} else {
			upd.Status = &st
		}
	}
	if _, ok := p["notes"]; ok && !errs.Has("notes") {
		notes := text(p, "notes", errs)
		upd.Notes = &notes
	}
	if errs.empty() && upd.Status == nil && upd.Notes == nil {
		errs.add(NonFieldErrors, "No changes supplied.")
	}

	if err := errs.orNil(); err != nil {
		return model.ProjectUpdate{}, err
	}
	return upd, nil
}

// ContactUpdate parses a staff edit of a message's read/archived flags.
func ContactUpdate(p Payload) (model.ContactUpdate, error) {
	errs := &Errors{}
	checkShape(contactUpdateSchema, p, errs)

	var upd model.ContactUpdate
	if v, ok := p["is_read"].(bool); ok && !errs.Has("is_read") {
		upd.IsRead = &v
	}
	if v, ok := p["is_archived"].(bool); ok && !errs.Has("is_archived") {
		upd.IsArchived = &v
	}
	if errs.empty() && upd.IsRead == nil && upd.IsArchived == nil {
		errs.add(NonFieldErrors, "No changes supplied.")
	}

	if err := errs.orNil(); err != nil {
		return model.ContactUpdate{}, err
	}
	return upd, nil
}

var (
	budgetReplacer = strings.NewReplacer("$", "", ",", "")
	budgetLimit    = decimal.New(1, 8)
)

// ParseBudget normalizes a currency amount. Strings may carry "$" and ","
// separators; the result is non-negative, fits 10 digits and has 2 decimal places.
func ParseBudget(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	var err error
	switch x := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(x.String())
	case float64:
		d = decimal.NewFromFloat(x)
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(budgetReplacer.Replace(x)))
	default:
		err = fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return decimal.Decimal{}, errors.New(msgNumber)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.New(msgNonNegative)
	}
	d = d.Round(2)
	if d.GreaterThanOrEqual(budgetLimit) {
		return decimal.Decimal{}, errors.New(msgMaxDigits)
	}
	return d, nil
}

// text returns the trimmed string value of key, or "" when absent, null or
// already rejected by the shape check.
func text(p Payload, key string, errs *Errors) string {
	if errs.Has(key) {
		return ""
	}
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	}
	return ""
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func addChoiceErr(errs *Errors, field string, err error) {
	if err != nil {
		errs.add(field, err.Error()+".")
	}
}

// fileList accepts a JSON array of references, a string holding such an
// array, or a single reference.
func fileList(v any) []string {
	var raw []string
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		s := strings.TrimSpace(x)
		if strings.HasPrefix(s, "[") {
			if err := json.Unmarshal([]byte(s), &raw); err == nil {
				break
			}
		}
		raw = []string{s}
	}

	var files []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			files = append(files, s)
		}
	}
	return files
}

func submittedAt(p Payload, errs *Errors) time.Time {
	s := text(p, "submitted_at", errs)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		errs.add("submitted_at", msgDateTime)
		return time.Time{}
	}
	if t.Before(earliestSubmittedAt) || !t.Before(latestSubmittedAt) {
		errs.add("submitted_at", msgDateRange)
		return time.Time{}
	}
	return t
}

// Timestamps are stored as int64 unix nanoseconds in SQLite, which only
// spans 1678 to 2262.
var (
	earliestSubmittedAt = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	latestSubmittedAt   = time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
)

// checkStruct applies the validate tags on the draft, skipping fields that
// already failed an earlier pass.
func checkStruct(draft any, errs *Errors) {
	err := structValidator.Struct(draft)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if errs.Has(field) {
			continue
		}
		errs.add(field, tagMessage(fe))
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	}
	return fmt.Sprintf("Failed %q validation.", fe.Tag())
}

// checkEmailDomain rejects addresses whose domain has no dot-separated suffix,
// which the struct email rule lets through.
func checkEmailDomain(email string, errs *Errors) {
	if email == "" || errs.Has("email") {
		return
	}
	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if at < 1 || dot <= 0 || dot == len(domain)-1 {
		errs.add("email", msgEmail)
	}
}

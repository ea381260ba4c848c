package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// fieldSpec lists the JSON types a payload field may carry.
type fieldSpec struct {
	name  string
	types []string
	items string
}

var projectFields = []fieldSpec{
	{name: "project_type", types: []string{"string", "null"}},
	{name: "client_name", types: []string{"string", "null"}},
	{name: "email", types: []string{"string", "null"}},
	{name: "company", types: []string{"string", "null"}},
	{name: "phone", types: []string{"string", "null"}},
	{name: "project_title", types: []string{"string", "null"}},
	{name: "project_description", types: []string{"string", "null"}},
	{name: "budget", types: []string{"string", "number", "null"}},
	{name: "timeline", types: []string{"string", "null"}},
	{name: "reference_links", types: []string{"string", "null"}},
	{name: "heard_from", types: []string{"string", "null"}},
	{name: "additional_notes", types: []string{"string", "null"}},
	{name: "attached_files", types: []string{"array", "string", "null"}, items: "string"},
	{name: "submitted_at", types: []string{"string", "null"}},
}

var contactFields = []fieldSpec{
	{name: "name", types: []string{"string", "null"}},
	{name: "email", types: []string{"string", "null"}},
	{name: "subject", types: []string{"string", "null"}},
	{name: "message", types: []string{"string", "null"}},
	{name: "submitted_at", types: []string{"string", "null"}},
}

var projectUpdateFields = []fieldSpec{
	{name: "status", types: []string{"string"}},
	{name: "notes", types: []string{"string", "null"}},
}

var contactUpdateFields = []fieldSpec{
	{name: "is_read", types: []string{"boolean"}},
	{name: "is_archived", types: []string{"boolean"}},
}

var (
	projectSchema       = mustCompile(projectFields)
	contactSchema       = mustCompile(contactFields)
	projectUpdateSchema = mustCompile(projectUpdateFields)
	contactUpdateSchema = mustCompile(contactUpdateFields)
)

func mustCompile(fields []fieldSpec) *jsonschema.Schema {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		prop := map[string]any{"type": f.types}
		if f.items != "" {
			prop["items"] = map[string]any{"type": f.items}
		}
		props[f.name] = prop
	}
	doc, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": props,
	})
	if err != nil {
		panic(fmt.Sprintf("marshal payload schema: %v", err))
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(doc, rs); err != nil {
		panic(fmt.Sprintf("compile payload schema: %v", err))
	}
	return rs
}

// checkShape validates the payload's JSON types against rs and records one
// message per offending field.
func checkShape(rs *jsonschema.Schema, p Payload, errs *Errors) {
	data, err := json.Marshal(p)
	if err != nil {
		errs.add(NonFieldErrors, "payload could not be encoded")
		return
	}
	keyErrs, err := rs.ValidateBytes(context.Background(), data)
	if err != nil {
		errs.add(NonFieldErrors, err.Error())
		return
	}
	for _, ke := range keyErrs {
		field := fieldFromPath(ke.PropertyPath)
		if errs.Has(field) {
			continue
		}
		errs.add(field, ke.Message)
	}
}

// fieldFromPath maps a JSON pointer such as "/attached_files/0" to its top-level field.
func fieldFromPath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return NonFieldErrors
	}
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}

package validate

import (
	"sort"
	"strings"
)

// NonFieldErrors is the key used for problems that do not belong to a single field.
const NonFieldErrors = "non_field_errors"

const (
	msgRequired    = "This field is required."
	msgEmail       = "Enter a valid email address."
	msgNumber      = "A valid number is required."
	msgNonNegative = "Ensure this value is greater than or equal to 0."
	msgMaxDigits   = "Ensure that there are no more than 10 digits in total."
	msgDateTime    = "Enter a valid date/time in RFC 3339 format."
	msgDateRange   = "Ensure this date/time is between 1900 and 2200."
)

// Errors maps field names to the validation messages raised for them.
type Errors struct {
	Fields map[string][]string
}

func (e *Errors) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Has reports whether field already carries at least one message.
func (e *Errors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *Errors) empty() bool {
	return len(e.Fields) == 0
}

// Error renders the messages as "field: msg" pairs in field order.
func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return strings.Join(parts, "; ")
}

// orNil keeps a nil *Errors from turning into a non-nil error interface.
func (e *Errors) orNil() error {
	if e.empty() {
		return nil
	}
	return e
}

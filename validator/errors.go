package validator

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemamodel/namepath"
)

// Detail is one keyword failure.
type Detail struct {
	// Keyword is the failing keyword ("required", "isNotEmpty", ...).
	Keyword string `json:"keyword"`
	Message string `json:"message"`
	// DataPath addresses the offending value, e.g. ".friends[0].firstName".
	DataPath string `json:"dataPath"`
	// SchemaPath is the JSON pointer of the failing keyword in the schema.
	SchemaPath string         `json:"schemaPath,omitempty"`
	Params     map[string]any `json:"params"`
}

// ErrorBag maps top-level entity keys to their first error message. The
// "message" key holds the summary of all details.
type ErrorBag map[string]string

// EntityValidationError reports every detail of a failed validation. Fields
// maps each top-level key present in the entity to the first detail whose
// data path addresses exactly that key.
type EntityValidationError struct {
	Variant Variant
	Details []Detail
	Fields  map[string]string
	Message string
}

func newEntityValidationError(details []Detail, entity any, variant Variant) *EntityValidationError {
	fields := map[string]string{}
	if m, ok := entity.(map[string]any); ok {
		for key := range m {
			for _, d := range details {
				if topLevelKey(d.DataPath) == key {
					fields[key] = d.Message
					break
				}
			}
		}
	}
	return &EntityValidationError{
		Variant: variant,
		Details: details,
		Fields:  fields,
		Message: summarize(details),
	}
}

// topLevelKey returns the key a one-segment data path addresses, or "" for
// deeper or unparsable paths. Keys containing dots or quotes are rendered in
// bracket form, so the parsed segment is the literal key.
func topLevelKey(dataPath string) string {
	segs, err := namepath.ParseDataPath(dataPath)
	if err != nil || len(segs) != 1 {
		return ""
	}
	return segs[0]
}

// Name identifies the error variant in encoded form.
func (e *EntityValidationError) Name() string {
	if e.Variant == VariantSchema {
		return "SchemaValidationError"
	}
	return "EntityValidationError"
}

// Error summarizes the first few details.
func (e *EntityValidationError) Error() string {
	if e == nil || len(e.Details) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(e.Details)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		d := e.Details[i]
		fmt.Fprintf(b, "%s at %s: %s", d.Keyword, dataPathOrRoot(d.DataPath), d.Message)
	}
	if n := len(e.Details); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Errors returns the field bag together with the summary under "message".
func (e *EntityValidationError) Errors() ErrorBag {
	bag := make(ErrorBag, len(e.Fields)+1)
	bag["message"] = e.Message
	for k, v := range e.Fields {
		bag[k] = v
	}
	return bag
}

// Messages lists every detail message in order.
func (e *EntityValidationError) Messages() []string {
	out := make([]string, len(e.Details))
	for i, d := range e.Details {
		out[i] = d.Message
	}
	return out
}

// MarshalJSON encodes {"name": ..., "errors": ...} in the shape selected by
// Variant.
func (e *EntityValidationError) MarshalJSON() ([]byte, error) {
	var errs any = e.Errors()
	if e.Variant == VariantSchema {
		errs = e.Details
	}
	return json.Marshal(struct {
		Name   string `json:"name"`
		Errors any    `json:"errors"`
	}{Name: e.Name(), Errors: errs})
}

// AsEntityError extracts an *EntityValidationError from err using errors.As.
func AsEntityError(err error) (*EntityValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *EntityValidationError
	if errors.As(err, &ve) && ve != nil {
		return ve, true
	}
	return nil, false
}

// summarize renders details as "data.path message" pairs.
func summarize(details []Detail) string {
	parts := make([]string, len(details))
	for i, d := range details {
		parts[i] = "data" + d.DataPath + " " + d.Message
	}
	return strings.Join(parts, ", ")
}

func dataPathOrRoot(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}

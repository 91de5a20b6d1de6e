package schemamodel

import (
	"fmt"

	"github.com/reoring/schemamodel/namepath"
	"github.com/reoring/schemamodel/validator"
)

// FindError returns the detail of exception whose data path addresses name.
// exception may be an error wrapping a *validator.EntityValidationError, the
// error itself, a []validator.Detail or a decoded {"details": [...]} map.
// Anything else, including nil, reports false.
func FindError(name string, exception any) (validator.Detail, bool) {
	for _, d := range detailsOf(exception) {
		if namepath.Matches(d.DataPath, name) {
			return d, true
		}
	}
	return validator.Detail{}, false
}

// ErrorMessage is FindError returning only the message ("" if none).
func ErrorMessage(name string, exception any) string {
	d, _ := FindError(name, exception)
	return d.Message
}

// ErrorMessages lists the messages carried by v: every detail message of a
// validation error, the text of any other error, or v itself formatted. A
// nil v yields an empty list.
func ErrorMessages(v any) []string {
	if v == nil {
		return []string{}
	}
	if details := detailsOf(v); details != nil {
		out := make([]string, len(details))
		for i, d := range details {
			out[i] = d.Message
		}
		return out
	}
	switch t := v.(type) {
	case error:
		return []string{t.Error()}
	case string:
		return []string{t}
	}
	return []string{fmt.Sprint(v)}
}

// FindError is the package-level FindError.
func (m *Model) FindError(name string, exception any) (validator.Detail, bool) {
	return FindError(name, exception)
}

// ErrorMessage is the package-level ErrorMessage.
func (m *Model) ErrorMessage(name string, exception any) string {
	return ErrorMessage(name, exception)
}

// ErrorMessages is the package-level ErrorMessages.
func (m *Model) ErrorMessages(v any) []string {
	return ErrorMessages(v)
}

func detailsOf(exception any) []validator.Detail {
	switch t := exception.(type) {
	case nil:
		return nil
	case *validator.EntityValidationError:
		if t == nil {
			return nil
		}
		return t.Details
	case validator.EntityValidationError:
		return t.Details
	case []validator.Detail:
		return t
	case error:
		if ve, ok := validator.AsEntityError(t); ok {
			return ve.Details
		}
	case map[string]any:
		raw, _ := t["details"].([]any)
		if raw == nil {
			return nil
		}
		out := make([]validator.Detail, 0, len(raw))
		for _, r := range raw {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			d := validator.Detail{}
			d.Keyword, _ = m["keyword"].(string)
			d.Message, _ = m["message"].(string)
			d.DataPath, _ = m["dataPath"].(string)
			d.Params, _ = m["params"].(map[string]any)
			out = append(out, d)
		}
		return out
	}
	return nil
}

package schemamodel

import (
	"errors"
	"fmt"

	"github.com/reoring/schemamodel/jsonschema"
)

// SchemaFieldNotFoundError reports a field name that does not exist in the
// schema.
type SchemaFieldNotFoundError struct {
	Path string
}

func (e *SchemaFieldNotFoundError) Error() string {
	return fmt.Sprintf("Field not found in schema: %q", e.Path)
}

// TypeResolutionError reports a field whose schema type has no semantic
// Kind ("null", missing or unknown types).
type TypeResolutionError struct {
	Field string
	Type  string
}

func (e *TypeResolutionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("field %q has no type", e.Field)
	}
	return fmt.Sprintf("field %q has type %q which cannot be represented", e.Field, e.Type)
}

// IsSchemaError reports whether err signals a defect in the schema or in the
// field name (missing field, unresolved reference, unrepresentable type),
// as opposed to an entity validation failure.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var (
		notFound *SchemaFieldNotFoundError
		typ      *TypeResolutionError
		inv      *jsonschema.InvalidReferenceError
		missing  *jsonschema.ReferenceNotFoundError
		cycle    *jsonschema.ReferenceCycleError
	)
	return errors.As(err, &notFound) ||
		errors.As(err, &typ) ||
		errors.As(err, &inv) ||
		errors.As(err, &missing) ||
		errors.As(err, &cycle)
}

package schemamodel

import (
	"errors"

	"github.com/reoring/schemamodel/jsonschema"
	"github.com/reoring/schemamodel/namepath"
)

// InitialOptions configures InitialValue.
type InitialOptions struct {
	// InitialCount is the number of items an array field starts with.
	InitialCount int
}

// InitialValue returns the value a form should start with for name. Arrays
// hold InitialCount copies of their first item's initial value, objects start
// empty and everything else starts with its schema default (nil if none).
func (m *Model) InitialValue(name string, opts InitialOptions) (any, error) {
	f, err := m.Field(name)
	if err != nil {
		return nil, err
	}
	switch f.Type() {
	case "array":
		item, err := m.InitialValue(namepath.Join(name, 0), InitialOptions{})
		var notFound *SchemaFieldNotFoundError
		if errors.As(err, &notFound) {
			// Arrays without an item schema start with null items.
			item, err = nil, nil
		}
		if err != nil {
			return nil, err
		}
		items := make([]any, max(opts.InitialCount, 0))
		for i := range items {
			items[i] = jsonschema.ToPlain(item)
		}
		return items, nil
	case "object":
		return map[string]any{}, nil
	}
	def, _ := f.Default()
	return jsonschema.ToPlain(def), nil
}

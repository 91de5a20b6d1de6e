// Package schemamodel derives form and entity metadata from a JSON Schema
// document.
//
// A Model wraps one schema and answers questions about it by field name:
// the resolved definition (with $ref and allOf/anyOf/oneOf applied), the
// semantic type, render-ready props, initial values and sub fields. It also
// validates entities, filling defaults and coercing types in place, and maps
// validation failures back onto field names.
//
// Field names are dotted paths ("billingAddress.state", "friends.0.firstName").
// Numeric segments address array items by index and "$" addresses the item
// schema of a list regardless of index.
//
// Package layout:
//   - jsonschema: ordered schema documents, JSON/YAML decoding and $ref resolution
//   - namepath: field name and data path helpers
//   - validator: the validation engine and its error types
//   - registry: named schema collections loaded from an fs.FS
//   - cmd/schemamodel: a CLI over the above
//
// Typical usage:
//
//	m, err := schemamodel.FromJSON(data)
//	f, err := m.Field("billingAddress.state")
//	props, err := m.Props("billingAddress.state", schemamodel.PropsOptions{})
//	entity, err := m.Validate(map[string]any{"firstName": ""})
//	msg := schemamodel.ErrorMessage("firstName", err)
package schemamodel

// Package jsonschema holds the schema document model shared by the field
// resolver and the validator.
//
// Documents are decoded into an order-preserving value model: *Object for
// JSON objects, []any for arrays and string/float64/bool/nil for scalars.
// JSON is read token by token with goccy/go-json, YAML through yaml.v3 nodes;
// both reject duplicate keys.
//
// Resolve and Deref implement local "$ref" resolution ("#/definitions/x").
// Nothing in this package mutates a decoded document.
package jsonschema

package validator_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemamodel/validator"
)

func TestEntityValidationError_JSONShapes(t *testing.T) {
	schema := `{"type":"object","properties":{"firstName":{"type":"string","isNotEmpty":true}}}`

	_, err := mustCompile(t, schema).Validate(map[string]any{"firstName": ""})
	b, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatalf("marshal: %v", mErr)
	}
	var entity struct {
		Name   string            `json:"name"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(b, &entity); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entity.Name != "EntityValidationError" || entity.Errors["firstName"] != "must have a value" {
		t.Fatalf("unexpected entity shape: %s", b)
	}
	if !strings.Contains(entity.Errors["message"], "data.firstName must have a value") {
		t.Fatalf("unexpected summary: %q", entity.Errors["message"])
	}

	_, err = mustCompile(t, schema, validator.WithVariant(validator.VariantSchema)).Validate(map[string]any{"firstName": ""})
	b, _ = json.Marshal(err)
	var generic struct {
		Name   string             `json:"name"`
		Errors []validator.Detail `json:"errors"`
	}
	if err := json.Unmarshal(b, &generic); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if generic.Name != "SchemaValidationError" || len(generic.Errors) != 1 {
		t.Fatalf("unexpected schema shape: %s", b)
	}
	if d := generic.Errors[0]; d.Keyword != "isNotEmpty" || d.DataPath != ".firstName" {
		t.Fatalf("unexpected detail: %#v", d)
	}
}

func TestEntityValidationError_ErrorSummary(t *testing.T) {
	_, err := mustCompile(t, `{"type":"object","required":["a","b","c","d"]}`).Validate(map[string]any{})
	msg := err.Error()
	if !strings.HasPrefix(msg, "required at .a:") || !strings.Contains(msg, "(total 4)") {
		t.Fatalf("unexpected summary %q", msg)
	}
	if _, ok := validator.AsEntityError(nil); ok {
		t.Fatalf("nil error must not convert")
	}
}

func TestEntityValidationError_FieldsForQuotedKeys(t *testing.T) {
	v := mustCompile(t, `{
		"type":"object",
		"properties":{
			"first name":{"type":"string","minLength":2},
			"a.b":{"type":"string","minLength":2},
			"nested":{"type":"object","properties":{"x":{"type":"string","minLength":2}}}
		}
	}`)
	_, err := v.Validate(map[string]any{"first name": "a", "a.b": "a", "nested": map[string]any{"x": "a"}})
	ve, ok := validator.AsEntityError(err)
	if !ok {
		t.Fatalf("expected entity error, got %v", err)
	}
	for _, key := range []string{"first name", "a.b"} {
		if ve.Fields[key] == "" {
			t.Fatalf("expected field error for %q, got %#v", key, ve.Fields)
		}
	}
	if _, ok := ve.Fields["nested"]; ok {
		t.Fatalf("nested detail must not map to its parent key: %#v", ve.Fields)
	}
}

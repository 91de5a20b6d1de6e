package schemamodel_test

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/reoring/schemamodel"
	"github.com/reoring/schemamodel/validator"
)

func newPersonModel(t *testing.T, opts ...schemamodel.Option) *schemamodel.Model {
	t.Helper()
	data, err := os.ReadFile("testdata/person.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	m, err := schemamodel.FromJSON(data, opts...)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

func TestField_CachedPerModel(t *testing.T) {
	m := newPersonModel(t)
	f1, err := m.Field("billingAddress.state")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	f2, err := m.Field("billingAddress.state")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("repeated lookups must return the cached definition")
	}
	if f1.Type() != "string" || !f1.Required || f1.Path != "billingAddress.state" {
		t.Fatalf("unexpected field %+v", f1)
	}

	other := newPersonModel(t)
	f3, _ := other.Field("billingAddress.state")
	if f3 == f1 {
		t.Fatalf("models must not share caches")
	}
}

func TestField_ConcurrentLookups(t *testing.T) {
	m := newPersonModel(t)
	var wg sync.WaitGroup
	got := make([]*schemamodel.Field, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = m.Field("friends.$.firstName")
		}(i)
	}
	wg.Wait()
	for _, f := range got {
		if f == nil || f != got[0] {
			t.Fatalf("concurrent lookups must resolve to one cached field")
		}
	}
}

func TestField_CompositionMerge(t *testing.T) {
	m := newPersonModel(t)
	f, err := m.Field("shippingAddress")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if f.Type() != "object" {
		t.Fatalf("expected merged type object, got %q", f.Type())
	}
	want := []string{"street", "city", "state", "type"}
	if got := f.RequiredNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("required = %v, want %v", got, want)
	}
	if got := strings.Join(f.Properties().Keys(), ","); got != "street,city,state,type" {
		t.Fatalf("unexpected merged properties %q", got)
	}

	typ, err := m.Field("shippingAddress.type")
	if err != nil || !typ.Required || len(typ.Enum()) != 2 {
		t.Fatalf("unexpected merged property: %v %+v", err, typ)
	}
}

func TestField_ArraysAndTuples(t *testing.T) {
	m := newPersonModel(t)
	cases := []struct {
		name string
		typ  string
	}{
		{"dateOfBirthTuple.0", "integer"},
		{"dateOfBirthTuple.1", "string"},
		{"friends.$", "object"},
		{"friends.0", "object"},
		{"friends.$.firstName", "string"},
		{"friends.3.lastName", "string"},
	}
	for _, tc := range cases {
		f, err := m.Field(tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if f.Type() != tc.typ {
			t.Fatalf("%s: type %q, want %q", tc.name, f.Type(), tc.typ)
		}
	}
	if f, _ := m.Field("friends.$.firstName"); !f.Required {
		t.Fatalf("friends.$.firstName is required by personalData")
	}
}

func TestField_NotFound(t *testing.T) {
	m := newPersonModel(t)
	for _, name := range []string{"nope", "age.0", "billingAddress.zip", "dateOfBirthTuple.3", "dateOfBirthTuple.$", "firstName.$"} {
		_, err := m.Field(name)
		var nf *schemamodel.SchemaFieldNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("%s: expected not found, got %v", name, err)
		}
		if nf.Path != name || !strings.Contains(err.Error(), `Field not found in schema: "`+name+`"`) {
			t.Fatalf("%s: unexpected error %q", name, err)
		}
		if !schemamodel.IsSchemaError(err) {
			t.Fatalf("%s: must be a schema error", name)
		}
	}
}

func TestField_BrokenReference(t *testing.T) {
	_, err := schemamodel.FromJSON([]byte(`{"type":"object","properties":{"a":{"$ref":"#/definitions/missing"}}}`))
	if err == nil || !schemamodel.IsSchemaError(err) {
		t.Fatalf("expected schema error at construction, got %v", err)
	}
}

func TestSubFields(t *testing.T) {
	m := newPersonModel(t)
	top, err := m.SubFields("")
	if err != nil {
		t.Fatalf("sub fields: %v", err)
	}
	if len(top) != 14 || top[0] != "firstName" || top[len(top)-1] != "invalid" {
		t.Fatalf("unexpected top-level fields %v", top)
	}
	addr, _ := m.SubFields("billingAddress")
	if !reflect.DeepEqual(addr, []string{"street", "city", "state"}) {
		t.Fatalf("unexpected address fields %v", addr)
	}
	leaf, _ := m.SubFields("age")
	if len(leaf) != 0 {
		t.Fatalf("leaf fields have no sub fields, got %v", leaf)
	}
}

func TestType(t *testing.T) {
	m := newPersonModel(t)
	cases := map[string]schemamodel.Kind{
		"dateOfBirth":      schemamodel.KindDate,
		"firstName":        schemamodel.KindString,
		"age":              schemamodel.KindNumber,
		"salary":           schemamodel.KindNumber,
		"billingAddress":   schemamodel.KindObject,
		"friends":          schemamodel.KindArray,
		"hasAJob":          schemamodel.KindBoolean,
		"shippingAddress":  schemamodel.KindObject,
		"dateOfBirthTuple": schemamodel.KindArray,
	}
	for name, want := range cases {
		got, err := m.Type(name)
		if err != nil || got != want {
			t.Fatalf("Type(%s) = %v, %v; want %v", name, got, err, want)
		}
	}

	_, err := m.Type("invalid")
	var te *schemamodel.TypeResolutionError
	if !errors.As(err, &te) || !strings.Contains(err.Error(), "invalid") {
		t.Fatalf("expected type resolution error naming the field, got %v", err)
	}
	if _, err := m.TypeString("invalid"); err == nil {
		t.Fatalf("TypeString must reject null types too")
	}

	if s, _ := m.TypeString("dateOfBirth"); s != "date-time" {
		t.Fatalf("TypeString(dateOfBirth) = %q", s)
	}
	if s, _ := m.TypeString("age"); s != "integer" {
		t.Fatalf("TypeString(age) = %q", s)
	}
}

func TestInitialValue(t *testing.T) {
	m := newPersonModel(t)

	v, err := m.InitialValue("friends", schemamodel.InitialOptions{InitialCount: 1})
	if err != nil {
		t.Fatalf("initial value: %v", err)
	}
	if !reflect.DeepEqual(v, []any{map[string]any{}}) {
		t.Fatalf("friends = %#v", v)
	}
	items := v.([]any)
	items[0].(map[string]any)["x"] = 1
	again, _ := m.InitialValue("friends", schemamodel.InitialOptions{InitialCount: 2})
	if !reflect.DeepEqual(again, []any{map[string]any{}, map[string]any{}}) {
		t.Fatalf("initial items must be fresh copies, got %#v", again)
	}

	if v, _ := m.InitialValue("friends", schemamodel.InitialOptions{}); !reflect.DeepEqual(v, []any{}) {
		t.Fatalf("default count is zero, got %#v", v)
	}
	if v, _ := m.InitialValue("personalData.firstName", schemamodel.InitialOptions{}); v != "John" {
		t.Fatalf("personalData.firstName = %#v", v)
	}
	if v, _ := m.InitialValue("salary", schemamodel.InitialOptions{}); v != nil {
		t.Fatalf("salary = %#v", v)
	}
	if v, _ := m.InitialValue("billingAddress", schemamodel.InitialOptions{}); !reflect.DeepEqual(v, map[string]any{}) {
		t.Fatalf("billingAddress = %#v", v)
	}
	if v, _ := m.InitialValue("dateOfBirthTuple", schemamodel.InitialOptions{InitialCount: 1}); !reflect.DeepEqual(v, []any{nil}) {
		t.Fatalf("dateOfBirthTuple = %#v", v)
	}
}

func TestEntity_Defaults(t *testing.T) {
	m := newPersonModel(t)
	want := map[string]any{"hasAJob": false}
	if !reflect.DeepEqual(m.Entity(), want) {
		t.Fatalf("entity = %#v", m.Entity())
	}

	arr, err := schemamodel.FromJSON([]byte(`{"type":"array","items":[{"type":"string","default":"a"}]}`))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(arr.Entity(), []any{"a"}) {
		t.Fatalf("array entity = %#v", arr.Entity())
	}
}

func TestValidate_EntityFieldMapping(t *testing.T) {
	m := newPersonModel(t)
	_, err := m.Validate(map[string]any{"firstName": "", "age": -1})
	ve, ok := validator.AsEntityError(err)
	if !ok {
		t.Fatalf("expected entity validation error, got %v", err)
	}
	if len(ve.Fields) != 2 || ve.Fields["firstName"] == "" || ve.Fields["age"] == "" {
		t.Fatalf("unexpected fields %#v", ve.Fields)
	}
	if schemamodel.IsSchemaError(err) {
		t.Fatalf("validation errors are not schema errors")
	}

	entity := map[string]any{"firstName": "Ann", "age": "30"}
	out, bag := m.IsValid(entity)
	if bag != nil {
		t.Fatalf("unexpected bag %#v", bag)
	}
	if out.(map[string]any)["age"] != float64(30) || entity["hasAJob"] != false {
		t.Fatalf("entity not normalized: %#v", entity)
	}
}

func TestErrorVariantOption(t *testing.T) {
	m := newPersonModel(t, schemamodel.WithErrorVariant(validator.VariantSchema))
	_, err := m.Validate(map[string]any{})
	ve, ok := validator.AsEntityError(err)
	if !ok || ve.Name() != "SchemaValidationError" {
		t.Fatalf("expected schema variant, got %v", err)
	}

	f := validator.NewFactory(validator.WithAllErrors(false))
	m = newPersonModel(t, schemamodel.WithFactory(f))
	_, err = m.Validate(map[string]any{})
	ve, _ = validator.AsEntityError(err)
	if ve == nil || len(ve.Details) != 1 {
		t.Fatalf("factory options must apply, got %v", err)
	}
}

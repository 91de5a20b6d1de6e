package schemamodel_test

import (
	"reflect"
	"testing"

	"github.com/reoring/schemamodel"
)

func TestProps_Captions(t *testing.T) {
	m := newPersonModel(t)
	cases := []struct {
		name        string
		opts        schemamodel.PropsOptions
		label       string
		placeholder string
	}{
		{"dateOfBirth", schemamodel.PropsOptions{}, "Date Of Birth", ""},
		{"billingAddress.state", schemamodel.PropsOptions{}, "State", ""},
		{"hasAJob", schemamodel.PropsOptions{Placeholder: schemamodel.AutoCaption}, "Has A Job", "Has A Job"},
		{"age", schemamodel.PropsOptions{Label: schemamodel.Text("Your age"), Placeholder: schemamodel.Text("e.g. 30")}, "Your age", "e.g. 30"},
		{"age", schemamodel.PropsOptions{Label: schemamodel.NoCaption}, "", ""},
	}
	for _, tc := range cases {
		p, err := m.Props(tc.name, tc.opts)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if p.Label != tc.label || p.Placeholder != tc.placeholder {
			t.Fatalf("%s: label %q placeholder %q, want %q %q", tc.name, p.Label, p.Placeholder, tc.label, tc.placeholder)
		}
	}
}

func TestProps_Flags(t *testing.T) {
	m := newPersonModel(t)
	salary, _ := m.Props("salary", schemamodel.PropsOptions{})
	if !salary.Decimal || salary.Required {
		t.Fatalf("salary: %+v", salary)
	}
	age, _ := m.Props("age", schemamodel.PropsOptions{})
	if age.Decimal || !age.Required {
		t.Fatalf("age: %+v", age)
	}
	status, _ := m.Props("status", schemamodel.PropsOptions{})
	if !reflect.DeepEqual(status.AllowedValues, []any{"active", "inactive"}) || status.Transform != nil {
		t.Fatalf("status: %+v", status)
	}
}

func TestProps_Options(t *testing.T) {
	m := newPersonModel(t)

	prof, err := m.Props("profession", schemamodel.PropsOptions{})
	if err != nil {
		t.Fatalf("props: %v", err)
	}
	if !reflect.DeepEqual(prof.AllowedValues, []any{"dev", "qa"}) {
		t.Fatalf("profession allowed values %#v", prof.AllowedValues)
	}
	if got := prof.Transform("qa"); got != "Tester" {
		t.Fatalf("profession transform = %q", got)
	}

	nat, _ := m.Props("nationality", schemamodel.PropsOptions{})
	if !reflect.DeepEqual(nat.AllowedValues, []any{"pl", "jp"}) {
		t.Fatalf("nationality allowed values %#v", nat.AllowedValues)
	}
	if got := nat.Transform("jp"); got != "Japanese" {
		t.Fatalf("nationality transform = %q", got)
	}
	if got := nat.Transform("xx"); got != "" {
		t.Fatalf("unknown value transform = %q", got)
	}
}

func TestProps_ExtraTakesPrecedence(t *testing.T) {
	m := newPersonModel(t)
	p, err := m.Props("age", schemamodel.PropsOptions{Extra: map[string]any{"label": "Override", "disabled": true}})
	if err != nil {
		t.Fatalf("props: %v", err)
	}
	if p.Get("label") != "Override" || p.Get("disabled") != true {
		t.Fatalf("extra props must win: %#v", p.Extra)
	}
	if p.Get("required") != true || p.Get("transform") != nil {
		t.Fatalf("computed props must remain reachable")
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"firstName":    "First Name",
		"dateOfBirth":  "Date Of Birth",
		"hasAJob":      "Has A Job",
		"zip_code":     "Zip Code",
		"state":        "State",
		"address2Line": "Address2 Line",
		"userID":       "User ID",
	}
	for in, want := range cases {
		if got := schemamodel.Humanize(in); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

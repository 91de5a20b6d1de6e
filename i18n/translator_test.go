package i18n

import "testing"

func TestDictionary_DefaultAndJapanese(t *testing.T) {
	en := Default()
	if msg := en.Message("isNotEmpty", nil); msg != "must have a value" {
		t.Fatalf("unexpected english message: %q", msg)
	}

	ja := Dictionary("ja")
	if msg := ja.Message("isNotEmpty", nil); msg == "must have a value" || msg == "" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
	// keywords without a japanese entry fall back to english
	if msg := ja.Message("uniqueItems", map[string]any{"i": 1, "j": 0}); msg != "should NOT have duplicate items (items ## 0 and 1 are identical)" {
		t.Fatalf("unexpected fallback: %q", msg)
	}
}

func TestDictionary_Params(t *testing.T) {
	tr := Dictionary("fr")
	cases := []struct {
		keyword string
		params  map[string]any
		want    string
	}{
		{"required", map[string]any{"missingProperty": "firstName"}, "should have required property 'firstName'"},
		{"exclusiveMinimum", map[string]any{"comparison": ">", "limit": 0}, "should be > 0"},
		{"type", map[string]any{"type": "string,null"}, "should be string,null"},
		{"minLength", map[string]any{"limit": 3}, "should NOT be shorter than 3 characters"},
		{"custom", nil, "should pass \"custom\" keyword validation"},
	}
	for _, c := range cases {
		if got := tr.Message(c.keyword, c.params); got != c.want {
			t.Fatalf("%s: got %q, want %q", c.keyword, got, c.want)
		}
	}
}

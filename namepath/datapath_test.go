package namepath_test

import (
	"reflect"
	"testing"

	"github.com/reoring/schemamodel/namepath"
)

func TestDataPathRoundTrip(t *testing.T) {
	cases := []struct {
		segs []string
		path string
	}{
		{[]string{"firstName"}, ".firstName"},
		{[]string{"friends", "0", "firstName"}, ".friends[0].firstName"},
		{[]string{"odd key", "it's"}, `['odd key']['it\'s']`},
	}
	for _, tc := range cases {
		if got := namepath.DataPath(tc.segs); got != tc.path {
			t.Fatalf("DataPath(%v) = %q, want %q", tc.segs, got, tc.path)
		}
		got, err := namepath.ParseDataPath(tc.path)
		if err != nil {
			t.Fatalf("ParseDataPath(%q): %v", tc.path, err)
		}
		if !reflect.DeepEqual(got, tc.segs) {
			t.Fatalf("ParseDataPath(%q) = %#v, want %#v", tc.path, got, tc.segs)
		}
	}

	for _, bad := range []string{".a[1", ".a..b", "['x"} {
		if _, err := namepath.ParseDataPath(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		dataPath, name string
		want           bool
	}{
		{".age", "age", true},
		{"age", "age", true},
		{".friends[1].firstName", "friends.1.firstName", true},
		{".friends[1].firstName", "friends.$.firstName", true},
		{".friends[1].firstName", "friends", false},
		{".ages", "age", false},
	}
	for _, tc := range cases {
		if got := namepath.Matches(tc.dataPath, tc.name); got != tc.want {
			t.Fatalf("Matches(%q, %q) = %v, want %v", tc.dataPath, tc.name, got, tc.want)
		}
	}
	if got := namepath.AppendProperty(namepath.AppendIndex(".list", 2), "a-b"); got != ".list[2]['a-b']" {
		t.Fatalf("unexpected append result %q", got)
	}
	if got := namepath.Pointer("definitions", "a/b"); got != "#/definitions/a~1b" {
		t.Fatalf("unexpected pointer %q", got)
	}
}

package jsonschema_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemamodel/jsonschema"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	v, err := jsonschema.Decode([]byte(`{"zeta":1,"alpha":{"b":true,"a":null},"mid":[1,"x"]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o := v.(*jsonschema.Object)
	if got := strings.Join(o.Keys(), ","); got != "zeta,alpha,mid" {
		t.Fatalf("unexpected key order %q", got)
	}
	if got := strings.Join(o.Object("alpha").Keys(), ","); got != "b,a" {
		t.Fatalf("unexpected nested order %q", got)
	}
	if o.Value("zeta") != float64(1) {
		t.Fatalf("numbers must decode as float64, got %T", o.Value("zeta"))
	}
	arr := o.Array("mid")
	if len(arr) != 2 || arr[1] != "x" {
		t.Fatalf("unexpected array %#v", arr)
	}

	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"zeta":1,"alpha":{"b":true,"a":null},"mid":[1,"x"]}` {
		t.Fatalf("unexpected re-encoding %s", b)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := jsonschema.Decode([]byte(`{"a":1,"a":2}`))
	var dup *jsonschema.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "a" {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	if _, err := jsonschema.Decode(nil); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	if _, err := jsonschema.Decode([]byte(`{} {}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
}

func TestObject_SetDeleteClone(t *testing.T) {
	o := jsonschema.ObjectOf("a", 1.0, "b", 2.0)
	o.Set("c", 3.0)
	o.Set("a", 10.0)
	o.Delete("b")
	if got := strings.Join(o.Keys(), ","); got != "a,c" {
		t.Fatalf("unexpected keys %q", got)
	}
	c := o.Clone()
	c.Set("d", 4.0)
	if o.Has("d") {
		t.Fatalf("clone must not alias the original")
	}
	var nilObj *jsonschema.Object
	if nilObj.Len() != 0 || nilObj.Has("x") || nilObj.Value("x") != nil {
		t.Fatalf("nil object reads must be safe")
	}
}

func TestPlainConversions(t *testing.T) {
	v := jsonschema.FromPlain(map[string]any{"b": 1, "a": []string{"x"}})
	o := v.(*jsonschema.Object)
	if got := strings.Join(o.Keys(), ","); got != "a,b" {
		t.Fatalf("plain keys must be sorted, got %q", got)
	}
	if o.Value("b") != float64(1) {
		t.Fatalf("ints must become float64, got %#v", o.Value("b"))
	}

	plain := jsonschema.ToPlain(o).(map[string]any)
	plain["a"].([]any)[0] = "changed"
	if o.Array("a")[0] != "x" {
		t.Fatalf("ToPlain must deep copy")
	}
}

func TestYAML_MultiDocAndDuplicates(t *testing.T) {
	docs, err := jsonschema.NewYAMLReader(strings.NewReader("type: object\nproperties:\n  b: {type: integer}\n  a: {type: string}\n---\ntype: string\n")).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	first := docs[0].(*jsonschema.Object)
	if got := strings.Join(first.Object("properties").Keys(), ","); got != "b,a" {
		t.Fatalf("unexpected yaml key order %q", got)
	}
	if jsonschema.TypeOf(docs[1].(*jsonschema.Object)) != "string" {
		t.Fatalf("unexpected second document %#v", docs[1])
	}

	_, err = jsonschema.DecodeYAML([]byte("a: 1\nb: 2\na: 3\n"))
	var dup *jsonschema.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if dup.Key != "a" || dup.FirstLine != 1 || dup.Line != 3 {
		t.Fatalf("unexpected positions %+v", dup)
	}

	if _, err := jsonschema.DecodeYAML(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestYAML_Scalars(t *testing.T) {
	v, err := jsonschema.DecodeYAML([]byte("n: 3\nf: 1.5\nb: true\nz: null\ns: hello\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o := v.(*jsonschema.Object)
	if o.Value("n") != float64(3) || o.Value("f") != 1.5 || o.Value("b") != true || o.Value("z") != nil || o.Value("s") != "hello" {
		t.Fatalf("unexpected scalars %#v", jsonschema.ToPlain(o))
	}
}

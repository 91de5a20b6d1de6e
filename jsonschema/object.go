package jsonschema

import (
	"bytes"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// Object is a JSON object that keeps the key order of its source document.
// Schema documents decoded by this package use *Object for every JSON object
// so that property and option order survive decoding.
//
// A nil *Object behaves as an empty object for all read accessors.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// ObjectOf builds an Object from alternating key/value pairs.
// It panics when a key is not a string, like a composite literal typo would.
func ObjectOf(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("jsonschema.ObjectOf: keys must be strings")
		}
		o.Set(k, kv[i+1])
	}
	return o
}

// Len reports the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns a copy of the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil.
func (o *Object) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// Has reports whether key is present (even when its value is null).
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set stores v under key. New keys are appended; existing keys keep their position.
func (o *Object) Set(key string, v any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Delete removes key when present.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
}

// Range calls fn for every entry in document order until fn returns false.
func (o *Object) Range(fn func(key string, v any) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy.
func (o *Object) Clone() *Object {
	out := NewObject()
	o.Range(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// String returns the string stored under key, or "".
func (o *Object) String(key string) string {
	s, _ := o.Value(key).(string)
	return s
}

// Object returns the nested object stored under key, or nil.
func (o *Object) Object(key string) *Object {
	m, _ := o.Value(key).(*Object)
	return m
}

// Array returns the array stored under key, or nil.
func (o *Object) Array(key string) []any {
	a, _ := o.Value(key).([]any)
	return a
}

// MarshalJSON encodes the object with keys in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	m, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("jsonschema: expected JSON object, got %T", v)
	}
	*o = *m
	return nil
}

// FromPlain converts map[string]any trees (as produced by encoding/json or
// hand-written Go literals) into *Object trees. Keys of plain maps have no
// order, so they are sorted to keep the result deterministic.
func FromPlain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.Set(k, FromPlain(t[k]))
		}
		return o
	case *Object:
		o := NewObject()
		t.Range(func(k string, vv any) bool {
			o.Set(k, FromPlain(vv))
			return true
		})
		return o
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = FromPlain(t[i])
		}
		return arr
	case []string:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = t[i]
		}
		return arr
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// ToPlain deep-copies a value into plain Go types (map[string]any, []any and
// scalars). Entities built from schema defaults use it so that they never alias
// the schema document.
func ToPlain(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		m := make(map[string]any, t.Len())
		t.Range(func(k string, vv any) bool {
			m[k] = ToPlain(vv)
			return true
		})
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = ToPlain(vv)
		}
		return m
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = ToPlain(t[i])
		}
		return arr
	default:
		return v
	}
}

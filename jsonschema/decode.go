package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// DuplicateKeyError reports a key that appears twice in the same object.
// Line and Col are 1-based and only set for YAML input.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("jsonschema: duplicate key %q", e.Key)
	}
	return fmt.Sprintf("jsonschema: duplicate key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Decode parses a JSON document into *Object, []any, string, float64, bool
// and nil values. Duplicate object keys are rejected.
func Decode(data []byte) (any, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader is Decode over an io.Reader. Exactly one JSON value is read;
// trailing content is an error.
func DecodeReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("jsonschema: empty document: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("jsonschema: unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("jsonschema: unexpected delimiter %q", rune(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: invalid number %q: %w", v.String(), err)
		}
		return f, nil
	case float64, string, bool, nil:
		return v, nil
	}
	return nil, fmt.Errorf("jsonschema: unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (any, error) {
	o := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return o, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonschema: expected object key, got %v", tok)
		}
		if o.Has(key) {
			return nil, &DuplicateKeyError{Key: key}
		}
		vt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		v, err := decodeValue(dec, vt)
		if err != nil {
			return nil, err
		}
		o.Set(key, v)
	}
}

func decodeArray(dec *json.Decoder) (any, error) {
	arr := []any{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

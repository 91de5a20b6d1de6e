package validator

import (
	"math"

	"github.com/reoring/schemamodel/jsonschema"
)

type float64er interface {
	Float64() (float64, error)
}

// toNumber extracts a float64 from any Go numeric type or json.Number.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float64er:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func isInteger(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// jsonType names the JSON type of an entity value. Integral numbers report
// "integer".
func jsonType(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any, *jsonschema.Object:
		return "object"
	case []any:
		return "array"
	default:
		if f, ok := toNumber(t); ok {
			if isInteger(f) {
				return "integer"
			}
			return "number"
		}
	}
	return ""
}

func matchesType(v any, want string) bool {
	got := jsonType(v)
	switch want {
	case "number":
		return got == "number" || got == "integer"
	default:
		return got == want
	}
}

func matchesAnyType(v any, types []string) bool {
	for _, t := range types {
		if matchesType(v, t) {
			return true
		}
	}
	return false
}

// equal compares JSON values structurally; numbers compare by value.
func equal(a, b any) bool {
	if fa, ok := toNumber(a); ok {
		fb, ok := toNumber(b)
		return ok && fa == fb
	}
	switch ta := a.(type) {
	case nil:
		return b == nil
	case bool, string:
		return a == b
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case *jsonschema.Object:
		return equal(jsonschema.ToPlain(ta), b)
	case map[string]any:
		if ob, ok := b.(*jsonschema.Object); ok {
			b = jsonschema.ToPlain(ob)
		}
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, ok := tb[k]
			if !ok || !equal(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}

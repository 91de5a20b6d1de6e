package validator

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// coerce converts data to the first type in types it can be coerced to,
// using "array" mode rules: scalars and single-element arrays convert both ways.
func coerce(data any, types []string) (any, bool) {
	if a, ok := data.([]any); ok && len(a) == 1 && !lo.Contains(types, "array") {
		// Single-element arrays unwrap into scalars.
		if matchesAnyType(a[0], types) {
			return a[0], true
		}
		data = a[0]
	}
	for _, t := range types {
		if v, ok := coerceTo(data, t); ok {
			return v, true
		}
	}
	return nil, false
}

func coerceTo(data any, t string) (any, bool) {
	switch t {
	case "string":
		switch d := data.(type) {
		case nil:
			return "", true
		case bool:
			return strconv.FormatBool(d), true
		default:
			if f, ok := toNumber(d); ok {
				return strconv.FormatFloat(f, 'f', -1, 64), true
			}
		}
	case "number", "integer":
		var f float64
		switch d := data.(type) {
		case nil:
			f = 0
		case bool:
			if d {
				f = 1
			}
		case string:
			s := strings.TrimSpace(d)
			if s == "" {
				return nil, false
			}
			parsed, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, false
			}
			f = parsed
		default:
			if n, ok := toNumber(d); ok && t == "number" {
				return n, true
			}
			return nil, false
		}
		if t == "integer" && !isInteger(f) {
			return nil, false
		}
		return f, true
	case "boolean":
		switch d := data.(type) {
		case nil:
			return false, true
		case string:
			switch d {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		default:
			if f, ok := toNumber(d); ok {
				switch f {
				case 0:
					return false, true
				case 1:
					return true, true
				}
			}
		}
	case "null":
		switch d := data.(type) {
		case string:
			if d == "" {
				return nil, true
			}
		case bool:
			if !d {
				return nil, true
			}
		default:
			if f, ok := toNumber(d); ok && f == 0 {
				return nil, true
			}
		}
	case "array":
		switch data.(type) {
		case map[string]any, []any:
			return nil, false
		}
		return []any{data}, true
	}
	return nil, false
}

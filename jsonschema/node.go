package jsonschema

// Composition keywords in the order field resolution scans them.
var CompositionKeywords = []string{"allOf", "anyOf", "oneOf"}

// TypeOf returns the declared type of a schema node. For a type array the
// first non-"null" entry wins, falling back to "null".
func TypeOf(node *Object) string {
	switch t := node.Value("type").(type) {
	case string:
		return t
	case []any:
		sawNull := false
		for _, v := range t {
			s, _ := v.(string)
			if s == "null" {
				sawNull = true
				continue
			}
			if s != "" {
				return s
			}
		}
		if sawNull {
			return "null"
		}
	}
	return ""
}

// Types returns the declared type list of node ("type" may be a string or an
// array of strings).
func Types(node *Object) []string {
	switch t := node.Value("type").(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// RequiredNames returns the string entries of node's "required" array.
func RequiredNames(node *Object) []string {
	var names []string
	for _, r := range node.Array("required") {
		if s, ok := r.(string); ok {
			names = append(names, s)
		}
	}
	return names
}

// HasComposition reports whether node carries allOf, anyOf or oneOf.
func HasComposition(node *Object) bool {
	for _, kw := range CompositionKeywords {
		if _, ok := node.Value(kw).([]any); ok {
			return true
		}
	}
	return false
}

// Normalize turns a caller-supplied schema document into the *Object value
// model. Plain Go maps are converted with FromPlain; *Object trees pass
// through untouched.
func Normalize(doc any) any {
	if o, ok := doc.(*Object); ok {
		return o
	}
	return FromPlain(doc)
}

package validator

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/reoring/schemamodel/jsonschema"
	"github.com/reoring/schemamodel/namepath"
)

// maxDepth bounds schema recursion for self-referencing documents.
const maxDepth = 512

// Validator is a compiled schema. It keeps no per-call state and may be used
// from several goroutines as long as they validate different values.
type Validator struct {
	root     any
	opts     Options
	keywords []Keyword
	formats  map[string]FormatFunc
	patterns map[string]*regexp.Regexp
}

// Schema returns the compiled schema document.
func (v *Validator) Schema() any { return v.root }

// Options returns the options the validator was compiled with.
func (v *Validator) Options() Options { return v.opts }

// Validate checks data and normalizes it (defaults, coercion, additional
// property removal) and returns the normalized value. Maps and slices are
// mostly updated in place, but values under anyOf and oneOf are normalized on
// a copy and a nil map is replaced, so callers must use the returned value.
// On failure the error is an *EntityValidationError.
func (v *Validator) Validate(data any) (any, error) {
	r := &run{v: v, all: v.opts.AllErrors}
	out := r.validate(v.root, data, "", "#", 0)
	if len(r.errs) > 0 {
		return out, newEntityValidationError(r.errs, out, v.opts.Variant)
	}
	return out, nil
}

// IsValid is Validate returning the error bag instead of an error. The bag
// is nil when data is valid.
func (v *Validator) IsValid(data any) (any, ErrorBag) {
	out, err := v.Validate(data)
	if ve, ok := AsEntityError(err); ok {
		return out, ve.Errors()
	}
	return out, nil
}

type run struct {
	v    *Validator
	all  bool
	errs []Detail
}

// stop reports whether validation should end early (first error in
// fail-fast mode).
func (r *run) stop() bool { return !r.all && len(r.errs) > 0 }

func (r *run) add(keyword, dataPath, schemaPath string, params map[string]any) {
	if params == nil {
		params = map[string]any{}
	}
	r.errs = append(r.errs, Detail{
		Keyword:    keyword,
		Message:    r.v.opts.Translator.Message(keyword, params),
		DataPath:   dataPath,
		SchemaPath: schemaPath,
		Params:     params,
	})
}

// try validates a deep copy of data in a fail-fast sub-run and reports
// whether it passed, together with the normalized copy.
func (r *run) try(schema, data any, dp, sp string, depth int) (any, bool) {
	sub := &run{v: r.v}
	out := sub.validate(schema, jsonschema.ToPlain(data), dp, sp, depth)
	return out, len(sub.errs) == 0
}

func (r *run) validate(schema, data any, dp, sp string, depth int) any {
	switch s := schema.(type) {
	case bool:
		if !s {
			r.add("false schema", dp, sp, nil)
		}
		return data
	case *jsonschema.Object:
		if depth > maxDepth {
			r.add("$ref", dp, sp, map[string]any{"reason": "maximum schema depth exceeded"})
			return data
		}
		return r.node(s, data, dp, sp, depth+1)
	}
	return data
}

func (r *run) node(s *jsonschema.Object, data any, dp, sp string, depth int) any {
	if m, ok := data.(map[string]any); ok && m == nil {
		data = map[string]any{}
	}
	if ref, ok := jsonschema.Ref(s); ok {
		target, err := jsonschema.Resolve(ref, r.v.root)
		if err != nil {
			r.add("$ref", dp, sp+"/$ref", map[string]any{"ref": ref})
			return data
		}
		return r.validate(target, data, dp, ref, depth)
	}

	if types := jsonschema.Types(s); len(types) > 0 && !matchesAnyType(data, types) {
		c, ok := coerce(data, types)
		if !ok {
			r.add("type", dp, sp+"/type", map[string]any{"type": strings.Join(types, ",")})
			return data
		}
		data = c
	}

	if enum, ok := s.Value("enum").([]any); ok {
		if !lo.ContainsBy(enum, func(e any) bool { return equal(e, data) }) {
			r.add("enum", dp, sp+"/enum", map[string]any{"allowedValues": enum})
			if r.stop() {
				return data
			}
		}
	}
	if c, ok := s.Get("const"); ok && !equal(c, data) {
		r.add("const", dp, sp+"/const", map[string]any{"allowedValue": c})
		if r.stop() {
			return data
		}
	}

	for _, kw := range r.v.keywords {
		sv, ok := s.Get(kw.Name)
		if !ok || sv == false || !kw.applies(data) {
			continue
		}
		if !kw.Validate(sv, data) {
			r.add(kw.Name, dp, sp+"/"+kw.Name, map[string]any{"keyword": kw.Name})
			if kw.Message != "" {
				r.errs[len(r.errs)-1].Message = kw.Message
			}
			if r.stop() {
				return data
			}
		}
	}

	switch d := data.(type) {
	case string:
		r.str(s, d, dp, sp)
	case map[string]any:
		r.obj(s, d, dp, sp, depth)
	case []any:
		data = r.arr(s, d, dp, sp, depth)
	default:
		if n, ok := toNumber(d); ok {
			r.num(s, n, dp, sp)
		}
	}
	if r.stop() {
		return data
	}
	return r.composition(s, data, dp, sp, depth)
}

func (r *run) str(s *jsonschema.Object, str, dp, sp string) {
	n := utf8.RuneCountInString(str)
	if limit, ok := toNumber(s.Value("minLength")); ok && float64(n) < limit {
		r.add("minLength", dp, sp+"/minLength", map[string]any{"limit": limit})
	}
	if limit, ok := toNumber(s.Value("maxLength")); ok && float64(n) > limit {
		r.add("maxLength", dp, sp+"/maxLength", map[string]any{"limit": limit})
	}
	if p, ok := s.Value("pattern").(string); ok {
		if re := r.v.patterns[p]; re != nil && !re.MatchString(str) {
			r.add("pattern", dp, sp+"/pattern", map[string]any{"pattern": p})
		}
	}
	if f, ok := s.Value("format").(string); ok {
		if check := r.v.formats[f]; check != nil && !check(str) {
			r.add("format", dp, sp+"/format", map[string]any{"format": f})
		}
	}
}

func (r *run) num(s *jsonschema.Object, n float64, dp, sp string) {
	check := func(keyword, comparison string, limit float64, ok bool) {
		if !ok {
			r.add(keyword, dp, sp+"/"+keyword, map[string]any{"comparison": comparison, "limit": limit})
		}
	}
	exclMin, _ := s.Value("exclusiveMinimum").(bool)
	exclMax, _ := s.Value("exclusiveMaximum").(bool)
	if limit, ok := toNumber(s.Value("minimum")); ok {
		if exclMin {
			check("exclusiveMinimum", ">", limit, n > limit)
		} else {
			check("minimum", ">=", limit, n >= limit)
		}
	}
	if limit, ok := toNumber(s.Value("maximum")); ok {
		if exclMax {
			check("exclusiveMaximum", "<", limit, n < limit)
		} else {
			check("maximum", "<=", limit, n <= limit)
		}
	}
	if limit, ok := toNumber(s.Value("exclusiveMinimum")); ok {
		check("exclusiveMinimum", ">", limit, n > limit)
	}
	if limit, ok := toNumber(s.Value("exclusiveMaximum")); ok {
		check("exclusiveMaximum", "<", limit, n < limit)
	}
	if m, ok := toNumber(s.Value("multipleOf")); ok && m > 0 {
		q := n / m
		if math.Abs(q-math.Round(q)) > 1e-9 {
			r.add("multipleOf", dp, sp+"/multipleOf", map[string]any{"multipleOf": m})
		}
	}
}

func (r *run) obj(s *jsonschema.Object, m map[string]any, dp, sp string, depth int) {
	props := s.Object("properties")
	if r.v.opts.UseDefaults {
		props.Range(func(k string, ps any) bool {
			if _, present := m[k]; present {
				return true
			}
			if def, ok := r.defaultOf(ps); ok {
				m[k] = jsonschema.ToPlain(def)
			}
			return true
		})
	}

	for _, name := range jsonschema.RequiredNames(s) {
		if _, ok := m[name]; !ok {
			r.add("required", namepath.AppendProperty(dp, name), sp+"/required", map[string]any{"missingProperty": name})
			if r.stop() {
				return
			}
		}
	}

	props.Range(func(k string, ps any) bool {
		if val, ok := m[k]; ok {
			m[k] = r.validate(ps, val, namepath.AppendProperty(dp, k), sp+"/properties/"+escape(k), depth)
		}
		return !r.stop()
	})
	if r.stop() {
		return
	}

	keys := lo.Keys(m)
	sort.Strings(keys)
	patternProps := s.Object("patternProperties")
	for _, k := range keys {
		matched := false
		patternProps.Range(func(p string, ps any) bool {
			if re := r.v.patterns[p]; re != nil && re.MatchString(k) {
				matched = true
				m[k] = r.validate(ps, m[k], namepath.AppendProperty(dp, k), sp+"/patternProperties/"+escape(p), depth)
			}
			return true
		})
		if matched || props.Has(k) {
			continue
		}
		switch ap := s.Value("additionalProperties").(type) {
		case bool:
			if ap {
				continue
			}
			if r.v.opts.RemoveAdditional {
				delete(m, k)
				continue
			}
			r.add("additionalProperties", dp, sp+"/additionalProperties", map[string]any{"additionalProperty": k})
		case *jsonschema.Object:
			m[k] = r.validate(ap, m[k], namepath.AppendProperty(dp, k), sp+"/additionalProperties", depth)
		}
		if r.stop() {
			return
		}
	}

	r.dependencies(s, m, dp, sp, depth)
	if r.stop() {
		return
	}
	if names, ok := s.Get("propertyNames"); ok {
		for _, k := range keys {
			if _, present := m[k]; !present {
				continue
			}
			if _, pass := r.try(names, k, dp, sp+"/propertyNames", depth); !pass {
				r.add("propertyNames", dp, sp+"/propertyNames", map[string]any{"propertyName": k})
				if r.stop() {
					return
				}
			}
		}
	}

	if limit, ok := toNumber(s.Value("minProperties")); ok && float64(len(m)) < limit {
		r.add("minProperties", dp, sp+"/minProperties", map[string]any{"limit": limit})
	}
	if limit, ok := toNumber(s.Value("maxProperties")); ok && float64(len(m)) > limit {
		r.add("maxProperties", dp, sp+"/maxProperties", map[string]any{"limit": limit})
	}
}

// dependencies applies property dependencies (a list of names that must be
// present too) and schema dependencies (validated against the whole object)
// for every present key.
func (r *run) dependencies(s *jsonschema.Object, m map[string]any, dp, sp string, depth int) {
	s.Object("dependencies").Range(func(k string, dep any) bool {
		if _, present := m[k]; !present {
			return true
		}
		esp := sp + "/dependencies/" + escape(k)
		names, isList := dep.([]any)
		if !isList {
			r.validate(dep, m, dp, esp, depth)
			return !r.stop()
		}
		deps := lo.FilterMap(names, func(n any, _ int) (string, bool) {
			name, ok := n.(string)
			return name, ok
		})
		for _, name := range deps {
			if _, ok := m[name]; ok {
				continue
			}
			r.add("dependencies", dp, esp, map[string]any{
				"property":        k,
				"missingProperty": name,
				"depsCount":       len(deps),
				"deps":            strings.Join(deps, ", "),
			})
			if r.stop() {
				return false
			}
		}
		return true
	})
}

func (r *run) arr(s *jsonschema.Object, a []any, dp, sp string, depth int) []any {
	switch items := s.Value("items").(type) {
	case []any:
		for i, is := range items {
			if i < len(a) {
				a[i] = r.validate(is, a[i], namepath.AppendIndex(dp, i), sp+"/items/"+strconv.Itoa(i), depth)
				if r.stop() {
					return a
				}
				continue
			}
			if !r.v.opts.UseDefaults {
				break
			}
			def, ok := r.defaultOf(is)
			if !ok {
				break
			}
			a = append(a, jsonschema.ToPlain(def))
		}
		if len(a) > len(items) {
			switch ai := s.Value("additionalItems").(type) {
			case bool:
				if !ai {
					r.add("additionalItems", dp, sp+"/additionalItems", map[string]any{"limit": len(items)})
				}
			case *jsonschema.Object:
				for i := len(items); i < len(a); i++ {
					a[i] = r.validate(ai, a[i], namepath.AppendIndex(dp, i), sp+"/additionalItems", depth)
				}
			}
		}
	case *jsonschema.Object, bool:
		for i := range a {
			a[i] = r.validate(items, a[i], namepath.AppendIndex(dp, i), sp+"/items", depth)
			if r.stop() {
				return a
			}
		}
	}

	if limit, ok := toNumber(s.Value("minItems")); ok && float64(len(a)) < limit {
		r.add("minItems", dp, sp+"/minItems", map[string]any{"limit": limit})
	}
	if limit, ok := toNumber(s.Value("maxItems")); ok && float64(len(a)) > limit {
		r.add("maxItems", dp, sp+"/maxItems", map[string]any{"limit": limit})
	}
	if unique, _ := s.Value("uniqueItems").(bool); unique {
	outer:
		for i := 1; i < len(a); i++ {
			for j := 0; j < i; j++ {
				if equal(a[i], a[j]) {
					r.add("uniqueItems", dp, sp+"/uniqueItems", map[string]any{"i": i, "j": j})
					break outer
				}
			}
		}
	}
	if c, ok := s.Get("contains"); ok {
		found := lo.ContainsBy(a, func(item any) bool {
			_, pass := r.try(c, item, dp, sp+"/contains", depth)
			return pass
		})
		if !found {
			r.add("contains", dp, sp+"/contains", nil)
		}
	}
	return a
}

func (r *run) composition(s *jsonschema.Object, data any, dp, sp string, depth int) any {
	for i, sub := range s.Array("allOf") {
		data = r.validate(sub, data, dp, sp+"/allOf/"+strconv.Itoa(i), depth)
		if r.stop() {
			return data
		}
	}

	if anyOf := s.Array("anyOf"); len(anyOf) > 0 {
		passed := false
		for i, sub := range anyOf {
			if out, ok := r.try(sub, data, dp, sp+"/anyOf/"+strconv.Itoa(i), depth); ok {
				data, passed = out, true
				break
			}
		}
		if !passed {
			r.add("anyOf", dp, sp+"/anyOf", nil)
			if r.stop() {
				return data
			}
		}
	}

	if oneOf := s.Array("oneOf"); len(oneOf) > 0 {
		var passing []int
		var first any
		for i, sub := range oneOf {
			if out, ok := r.try(sub, data, dp, sp+"/oneOf/"+strconv.Itoa(i), depth); ok {
				if len(passing) == 0 {
					first = out
				}
				passing = append(passing, i)
			}
		}
		if len(passing) == 1 {
			data = first
		} else {
			params := map[string]any{"passingSchemas": nil}
			if len(passing) > 1 {
				params["passingSchemas"] = passing
			}
			r.add("oneOf", dp, sp+"/oneOf", params)
			if r.stop() {
				return data
			}
		}
	}

	if not, ok := s.Get("not"); ok {
		if _, pass := r.try(not, data, dp, sp+"/not", depth); pass {
			r.add("not", dp, sp+"/not", nil)
			if r.stop() {
				return data
			}
		}
	}

	if cond, ok := s.Get("if"); ok {
		_, pass := r.try(cond, data, dp, sp+"/if", depth)
		branch := "else"
		if pass {
			branch = "then"
		}
		if next, ok := s.Get(branch); ok {
			before := len(r.errs)
			data = r.validate(next, data, dp, sp+"/"+branch, depth)
			if len(r.errs) > before {
				r.add("if", dp, sp+"/if", map[string]any{"failingKeyword": branch})
			}
		}
	}
	return data
}

// defaultOf returns the "default" of a property schema, following $ref.
func (r *run) defaultOf(schema any) (any, bool) {
	target, err := jsonschema.Deref(schema, r.v.root)
	if err != nil {
		return nil, false
	}
	o, ok := target.(*jsonschema.Object)
	if !ok {
		return nil, false
	}
	return o.Get("default")
}

func escape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

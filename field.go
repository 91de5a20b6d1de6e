package schemamodel

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/reoring/schemamodel/jsonschema"
	"github.com/reoring/schemamodel/namepath"
)

// Field is a resolved field definition. Node is the schema node after $ref
// substitution and composition merging; it is shared with the model's cache
// and must be treated as read-only.
type Field struct {
	// Path is the canonical dotted name ("" for the root).
	Path string
	Node *jsonschema.Object
	// Required reports whether the last path segment is listed in the
	// parent's "required".
	Required bool
}

// Type returns the declared schema type.
func (f *Field) Type() string { return jsonschema.TypeOf(f.Node) }

// Format returns the "format" keyword, if any.
func (f *Field) Format() string { return f.Node.String("format") }

// RequiredNames returns the names listed in "required".
func (f *Field) RequiredNames() []string { return jsonschema.RequiredNames(f.Node) }

// Properties returns the "properties" object (nil when absent).
func (f *Field) Properties() *jsonschema.Object { return f.Node.Object("properties") }

// Enum returns the "enum" values.
func (f *Field) Enum() []any { return f.Node.Array("enum") }

// Options returns the "options" extension value.
func (f *Field) Options() any { return f.Node.Value("options") }

// Default returns the "default" keyword.
func (f *Field) Default() (any, bool) { return f.Node.Get("default") }

// Get returns any keyword of the resolved node, including extension keys.
func (f *Field) Get(key string) any { return f.Node.Value(key) }

// fieldResolver walks field names through the schema and memoizes every
// prefix it resolves. The cache belongs to one Model.
type fieldResolver struct {
	root any
	log  *slog.Logger

	mu    sync.Mutex
	cache map[string]*Field
}

func newFieldResolver(root any, log *slog.Logger) *fieldResolver {
	return &fieldResolver{root: root, log: log, cache: map[string]*Field{}}
}

// field returns the cached definition for name, computing and storing every
// missing prefix. The lock is held for the whole walk so a path is computed
// at most once.
func (r *fieldResolver) field(name string) (*Field, error) {
	segs := namepath.Segments(name)
	full := strings.Join(segs, ".")

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[full]; ok {
		return f, nil
	}
	acc, ok := r.cache[""]
	if !ok {
		node, err := r.resolveNode(r.root, "")
		if err != nil {
			return nil, err
		}
		acc = &Field{Node: node}
		r.store(acc)
	}
	for i, seg := range segs {
		path := strings.Join(segs[:i+1], ".")
		if f, ok := r.cache[path]; ok {
			acc = f
			continue
		}
		f, err := r.step(acc, seg, path, full)
		if err != nil {
			return nil, err
		}
		r.store(f)
		acc = f
	}
	return acc, nil
}

func (r *fieldResolver) store(f *Field) {
	r.cache[f.Path] = f
	r.log.Debug("field resolved", "path", f.Path, "type", f.Type(), "required", f.Required)
}

// step descends from parent into seg.
func (r *fieldResolver) step(parent *Field, seg, path, full string) (*Field, error) {
	var def any
	switch {
	case namepath.IsWildcard(seg) || namepath.IsIndex(seg):
		if parent.Type() != "array" {
			return nil, &SchemaFieldNotFoundError{Path: full}
		}
		switch items := parent.Node.Value("items").(type) {
		case []any:
			if !namepath.IsIndex(seg) {
				return nil, &SchemaFieldNotFoundError{Path: full}
			}
			i, err := strconv.Atoi(seg)
			if err != nil || i >= len(items) {
				return nil, &SchemaFieldNotFoundError{Path: full}
			}
			def = items[i]
		case *jsonschema.Object:
			def = items
		}
	case parent.Type() == "object":
		def = parent.Properties().Value(seg)
	default:
		def = r.memberProperty(parent.Node, seg)
	}
	if def == nil {
		return nil, &SchemaFieldNotFoundError{Path: full}
	}

	node, err := r.resolveNode(def, path)
	if err != nil {
		return nil, err
	}
	return &Field{
		Path:     path,
		Node:     node,
		Required: lo.Contains(parent.RequiredNames(), seg),
	}, nil
}

// memberProperty finds seg in the properties of the first composition member
// declaring it, scanning allOf, anyOf and oneOf in order.
func (r *fieldResolver) memberProperty(node *jsonschema.Object, seg string) any {
	for _, kw := range jsonschema.CompositionKeywords {
		for _, m := range node.Array(kw) {
			target, err := jsonschema.Deref(m, r.root)
			if err != nil {
				continue
			}
			mo, _ := target.(*jsonschema.Object)
			if v, ok := mo.Object("properties").Get(seg); ok {
				return v
			}
		}
	}
	return nil
}

// resolveNode substitutes $ref and merges composition members of def.
func (r *fieldResolver) resolveNode(def any, path string) (*jsonschema.Object, error) {
	target, err := jsonschema.Deref(def, r.root)
	if err != nil {
		return nil, fmt.Errorf("schemamodel: field %q: %w", path, err)
	}
	node, ok := target.(*jsonschema.Object)
	if !ok {
		// Boolean schemas carry no definition.
		node = jsonschema.NewObject()
	}
	if !jsonschema.HasComposition(node) {
		return node, nil
	}
	merged, err := mergeComposition(node, r.root)
	if err != nil {
		return nil, fmt.Errorf("schemamodel: field %q: %w", path, err)
	}
	return merged, nil
}

// mergeComposition returns a copy of node whose composition members have their
// $ref resolved and whose type, required and properties are synthesized from
// the members: the node's own type or else the first member type wins,
// required arrays are concatenated and properties are merged with later
// members overriding earlier ones.
func mergeComposition(node *jsonschema.Object, root any) (*jsonschema.Object, error) {
	out := node.Clone()
	typ := jsonschema.TypeOf(node)
	required := append([]any(nil), node.Array("required")...)
	props := node.Object("properties").Clone()

	for _, kw := range jsonschema.CompositionKeywords {
		members := node.Array(kw)
		if members == nil {
			continue
		}
		resolved := make([]any, len(members))
		for i, m := range members {
			target, err := jsonschema.Deref(m, root)
			if err != nil {
				return nil, err
			}
			resolved[i] = target
			mo, ok := target.(*jsonschema.Object)
			if !ok {
				continue
			}
			if typ == "" {
				typ = jsonschema.TypeOf(mo)
			}
			required = append(required, mo.Array("required")...)
			mo.Object("properties").Range(func(k string, v any) bool {
				props.Set(k, v)
				return true
			})
		}
		out.Set(kw, resolved)
	}

	if typ != "" && !out.Has("type") {
		out.Set("type", typ)
	}
	if len(required) > 0 {
		out.Set("required", required)
	}
	if props.Len() > 0 {
		out.Set("properties", props)
	}
	return out, nil
}

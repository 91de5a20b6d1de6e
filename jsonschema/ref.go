package jsonschema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InvalidReferenceError is returned for references that are not local
// fragment pointers (they must start with '#').
type InvalidReferenceError struct {
	Ref string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("Reference is not an internal reference, and only such are allowed: %q", e.Ref)
}

// ReferenceNotFoundError is returned when a pointer walk ends on a missing or
// null node.
type ReferenceNotFoundError struct {
	Ref string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("Reference not found in schema: %q", e.Ref)
}

// ReferenceCycleError is returned by Deref when $ref chains loop back.
type ReferenceCycleError struct {
	Chain []string
}

func (e *ReferenceCycleError) Error() string {
	return fmt.Sprintf("cyclic $ref chain: %s", strings.Join(e.Chain, " -> "))
}

// Resolve walks root following the local reference ref (e.g.
// "#/definitions/address") and returns the node it points to. Segments are
// unescaped per RFC 6901; numeric segments index arrays.
func Resolve(ref string, root any) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &InvalidReferenceError{Ref: ref}
	}
	cur := root
	for _, seg := range strings.Split(strings.TrimPrefix(ref, "#"), "/") {
		if seg == "" {
			continue
		}
		seg = unescapeSegment(seg)
		next, ok := child(cur, seg)
		if !ok {
			return nil, &ReferenceNotFoundError{Ref: ref}
		}
		cur = next
	}
	if cur == nil {
		return nil, &ReferenceNotFoundError{Ref: ref}
	}
	return cur, nil
}

func child(node any, seg string) (any, bool) {
	switch t := node.(type) {
	case *Object:
		return t.Get(seg)
	case map[string]any:
		v, ok := t[seg]
		return v, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}
		return t[i], true
	}
	return nil, false
}

func unescapeSegment(seg string) string {
	if strings.Contains(seg, "%") {
		if u, err := url.PathUnescape(seg); err == nil {
			seg = u
		}
	}
	return strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
}

// Ref returns the $ref of node, if any.
func Ref(node any) (string, bool) {
	o, ok := node.(*Object)
	if !ok {
		return "", false
	}
	ref, ok := o.Value("$ref").(string)
	return ref, ok
}

// Deref follows $ref chains starting at node until it reaches a node without
// $ref. Sibling keywords of a $ref are ignored, as in draft-07.
func Deref(node any, root any) (any, error) {
	var chain []string
	for {
		ref, ok := Ref(node)
		if !ok {
			return node, nil
		}
		for _, seen := range chain {
			if seen == ref {
				return nil, &ReferenceCycleError{Chain: append(chain, ref)}
			}
		}
		chain = append(chain, ref)
		next, err := Resolve(ref, root)
		if err != nil {
			return nil, err
		}
		node = next
	}
}

// WalkRefs calls fn for every $ref string found anywhere in doc, together
// with the JSON pointer of the node carrying it. It does not follow references.
func WalkRefs(doc any, fn func(pointer, ref string) error) error {
	return walkRefs(doc, "#", fn)
}

func walkRefs(node any, ptr string, fn func(pointer, ref string) error) error {
	switch t := node.(type) {
	case *Object:
		var err error
		t.Range(func(k string, v any) bool {
			if k == "$ref" {
				if s, ok := v.(string); ok {
					if err = fn(ptr, s); err != nil {
						return false
					}
				}
				return true
			}
			if err = walkRefs(v, ptr+"/"+escapeSegment(k), fn); err != nil {
				return false
			}
			return true
		})
		return err
	case []any:
		for i, v := range t {
			if err := walkRefs(v, ptr+"/"+strconv.Itoa(i), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func escapeSegment(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

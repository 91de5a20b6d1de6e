// Package namepath converts between dotted field names ("friends.0.firstName")
// and their segment form, and between segments and dot-prefixed data paths
// (".friends[0].firstName").
package namepath

import (
	"fmt"
	"strconv"
	"strings"
)

// Wildcard addresses the item schema of a list independently of the index.
const Wildcard = "$"

// Join flattens parts into a dotted field name. Parts may be strings (which
// may themselves be dotted), string or any slices, and integers. Empty or
// nil parts are dropped; the integer 0 is kept.
func Join(parts ...any) string {
	return strings.Join(Segments(parts...), ".")
}

// Segments is the segment form of Join: every part is flattened and each
// segment stringified.
func Segments(parts ...any) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = appendPart(out, p)
	}
	return out
}

func appendPart(out []string, p any) []string {
	switch t := p.(type) {
	case nil:
		return out
	case string:
		if t == "" {
			return out
		}
		for _, s := range strings.Split(t, ".") {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		for _, s := range t {
			out = appendPart(out, s)
		}
		return out
	case []any:
		for _, s := range t {
			out = appendPart(out, s)
		}
		return out
	case int:
		return append(out, strconv.Itoa(t))
	case int64:
		return append(out, strconv.FormatInt(t, 10))
	case uint:
		return append(out, strconv.FormatUint(uint64(t), 10))
	case float64:
		return append(out, strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		if !t {
			return out
		}
		return append(out, "true")
	case fmt.Stringer:
		return appendPart(out, t.String())
	default:
		return append(out, fmt.Sprint(t))
	}
}

// IsIndex reports whether seg is a non-negative decimal integer.
func IsIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsWildcard reports whether seg is the "$" item wildcard.
func IsWildcard(seg string) bool { return seg == Wildcard }

// Parent splits name into its parent name and last segment.
func Parent(name string) (parent, last string) {
	segs := Segments(name)
	if len(segs) == 0 {
		return "", ""
	}
	return strings.Join(segs[:len(segs)-1], "."), segs[len(segs)-1]
}

package namepath

import (
	"fmt"
	"strconv"
	"strings"
)

// AppendProperty extends a dot-prefixed data path with an object key:
// identifiers become ".key", anything else "['key']".
func AppendProperty(path, key string) string {
	if isIdentifier(key) {
		return path + "." + key
	}
	return path + "['" + escapeQuoted(key) + "']"
}

// AppendIndex extends a data path with an array index ("[i]").
func AppendIndex(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// DataPath renders segments as a data path. Numeric segments are rendered as
// indices.
func DataPath(segs []string) string {
	var b strings.Builder
	for _, s := range segs {
		if IsIndex(s) {
			b.WriteString("[" + s + "]")
			continue
		}
		b.WriteString(AppendProperty("", s))
	}
	return b.String()
}

// ParseDataPath splits a data path back into segments. Both ".key", "[0]"
// and "['key']" forms are accepted; a path without a leading dot is read as a
// plain dotted name.
func ParseDataPath(p string) ([]string, error) {
	var segs []string
	i := 0
	for i < len(p) {
		switch p[i] {
		case '.':
			j := i + 1
			for j < len(p) && p[j] != '.' && p[j] != '[' {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("namepath: empty segment at %d in %q", i, p)
			}
			segs = append(segs, p[i+1:j])
			i = j
		case '[':
			if i+1 < len(p) && p[i+1] == '\'' {
				seg, next, err := readQuoted(p, i+2)
				if err != nil {
					return nil, err
				}
				segs = append(segs, seg)
				i = next
				continue
			}
			end := strings.IndexByte(p[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("namepath: unterminated index in %q", p)
			}
			segs = append(segs, p[i+1:i+end])
			i += end + 1
		default:
			if i == 0 {
				j := 0
				for j < len(p) && p[j] != '.' && p[j] != '[' {
					j++
				}
				segs = append(segs, p[:j])
				i = j
				continue
			}
			return nil, fmt.Errorf("namepath: unexpected %q at %d in %q", p[i], i, p)
		}
	}
	return segs, nil
}

// readQuoted reads a quoted segment starting after "['" and returns the
// unescaped text and the index after the closing "']".
func readQuoted(p string, i int) (string, int, error) {
	var b strings.Builder
	for i < len(p) {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			b.WriteByte(p[i+1])
			i += 2
		case c == '\'' && i+1 < len(p) && p[i+1] == ']':
			return b.String(), i + 2, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("namepath: unterminated quoted segment in %q", p)
}

// Matches reports whether the data path addresses the dotted field name. A
// "$" segment in name matches any index.
func Matches(dataPath, name string) bool {
	got, err := ParseDataPath(dataPath)
	if err != nil {
		return false
	}
	want := Segments(name)
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if want[i] == got[i] {
			continue
		}
		if IsWildcard(want[i]) && IsIndex(got[i]) {
			continue
		}
		return false
	}
	return true
}

// Pointer renders segments as an RFC 6901 JSON pointer fragment ("#/a/b").
func Pointer(segs ...string) string {
	if len(segs) == 0 {
		return "#"
	}
	esc := make([]string, len(segs))
	for i, s := range segs {
		esc[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
	}
	return "#/" + strings.Join(esc, "/")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '$' || r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func escapeQuoted(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`)
}

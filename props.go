package schemamodel

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reoring/schemamodel/jsonschema"
	"github.com/reoring/schemamodel/namepath"
)

// CaptionMode selects how a label or placeholder is produced.
type CaptionMode int

const (
	// CaptionDefault uses the per-prop default: auto for labels, none for
	// placeholders.
	CaptionDefault CaptionMode = iota
	// CaptionAuto derives the text from the last segment of the field name.
	CaptionAuto
	// CaptionText uses Caption.Text verbatim.
	CaptionText
	// CaptionNone yields the empty string.
	CaptionNone
)

// Caption is a label or placeholder request.
type Caption struct {
	Mode CaptionMode
	Text string
}

// Text requests the literal caption s.
func Text(s string) Caption { return Caption{Mode: CaptionText, Text: s} }

var (
	// AutoCaption derives the caption from the field name.
	AutoCaption = Caption{Mode: CaptionAuto}
	// NoCaption yields an empty caption.
	NoCaption = Caption{Mode: CaptionNone}
)

// PropsOptions configures Props.
type PropsOptions struct {
	Label       Caption
	Placeholder Caption
	// Extra props are returned through Props.Get ahead of computed values.
	Extra map[string]any
}

// Props is the render-ready property bag of a field.
type Props struct {
	AllowedValues []any
	Decimal       bool
	Label         string
	Placeholder   string
	Required      bool
	// Transform maps an allowed value to its display text. It is nil unless
	// the field declares "options".
	Transform func(value any) string
	Extra     map[string]any
}

// Get returns a prop by name. Extra props take precedence over computed ones.
func (p Props) Get(key string) any {
	if v, ok := p.Extra[key]; ok {
		return v
	}
	switch key {
	case "allowedValues":
		return p.AllowedValues
	case "decimal":
		return p.Decimal
	case "label":
		return p.Label
	case "placeholder":
		return p.Placeholder
	case "required":
		return p.Required
	case "transform":
		if p.Transform == nil {
			return nil
		}
		return p.Transform
	}
	return nil
}

// Props builds the property bag of name. Allowed values come from "options"
// when present, else from "enum". An "options" object maps values to display
// texts; an "options" array lists {label, value} pairs.
func (m *Model) Props(name string, opts PropsOptions) (Props, error) {
	f, err := m.Field(name)
	if err != nil {
		return Props{}, err
	}
	_, last := namepath.Parent(name)
	p := Props{
		AllowedValues: f.Enum(),
		Decimal:       f.Type() == "number",
		Label:         caption(opts.Label, CaptionAuto, last),
		Placeholder:   caption(opts.Placeholder, CaptionNone, last),
		Required:      f.Required,
		Extra:         opts.Extra,
	}

	switch options := f.Options().(type) {
	case *jsonschema.Object:
		p.AllowedValues = lo.Map(options.Keys(), func(k string, _ int) any { return k })
		p.Transform = func(v any) string {
			return display(options.Value(fmt.Sprint(v)))
		}
	case []any:
		pairs := lo.FilterMap(options, func(o any, _ int) (*jsonschema.Object, bool) {
			pair, ok := o.(*jsonschema.Object)
			return pair, ok
		})
		p.AllowedValues = lo.Map(pairs, func(pair *jsonschema.Object, _ int) any { return pair.Value("value") })
		p.Transform = func(v any) string {
			pair, ok := lo.Find(pairs, func(pair *jsonschema.Object) bool {
				return fmt.Sprint(pair.Value("value")) == fmt.Sprint(v)
			})
			if !ok {
				return ""
			}
			return display(pair.Value("label"))
		}
	}
	return p, nil
}

func caption(c Caption, def CaptionMode, segment string) string {
	mode := c.Mode
	if mode == CaptionDefault {
		mode = def
	}
	switch mode {
	case CaptionAuto:
		return Humanize(segment)
	case CaptionText:
		return c.Text
	}
	return ""
}

func display(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Humanize turns a camelCase or snake_case field name into capitalized words:
// "dateOfBirth" becomes "Date Of Birth" and "hasAJob" becomes "Has A Job".
func Humanize(name string) string {
	rs := []rune(name)
	var b strings.Builder
	for i, r := range rs {
		if r == '_' || r == '-' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	// Casers are stateful; one per call.
	return cases.Title(language.English, cases.NoLower).String(strings.Join(strings.Fields(b.String()), " "))
}

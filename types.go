package schemamodel

// Kind is the semantic type of a field.
type Kind int

const (
	KindInvalid Kind = iota
	KindDate
	KindString
	KindNumber
	KindObject
	KindArray
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "Date"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindBoolean:
		return "Boolean"
	}
	return "Invalid"
}

// Type maps the field's schema type and format to a Kind. "date-time"
// formatted fields are KindDate. Fields typed "null", untyped fields and
// unknown types fail with a *TypeResolutionError.
func (m *Model) Type(name string) (Kind, error) {
	f, err := m.Field(name)
	if err != nil {
		return KindInvalid, err
	}
	if f.Format() == "date-time" {
		return KindDate, nil
	}
	switch t := f.Type(); t {
	case "string":
		return KindString, nil
	case "number", "integer":
		return KindNumber, nil
	case "object":
		return KindObject, nil
	case "array":
		return KindArray, nil
	case "boolean":
		return KindBoolean, nil
	default:
		return KindInvalid, &TypeResolutionError{Field: name, Type: t}
	}
}

// TypeString is Type returning the raw schema type, or "date-time" for
// date fields.
func (m *Model) TypeString(name string) (string, error) {
	k, err := m.Type(name)
	if err != nil {
		return "", err
	}
	if k == KindDate {
		return "date-time", nil
	}
	f, _ := m.Field(name)
	return f.Type(), nil
}

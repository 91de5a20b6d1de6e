package validator

import (
	"strings"
	"unicode/utf8"
)

// Keyword is a custom validation keyword. It runs when the schema node carries
// Name with any value other than false, and the data's JSON type is listed in
// Types (an empty Types applies to every type).
type Keyword struct {
	Name string
	// Types lists JSON types ("string", "array", ...) the keyword applies to.
	Types []string
	// Message, when set, is used verbatim instead of the Translator.
	Message string
	// Validate receives the keyword's schema value and the data.
	Validate func(schemaValue, data any) bool
}

func (k Keyword) applies(data any) bool {
	if len(k.Types) == 0 {
		return true
	}
	t := jsonType(data)
	for _, want := range k.Types {
		if want == t || (want == "number" && t == "integer") {
			return true
		}
	}
	return false
}

// NotEmptyKeyword fails strings that are empty after trimming.
var NotEmptyKeyword = Keyword{
	Name:  "isNotEmpty",
	Types: []string{"string"},
	Validate: func(_, data any) bool {
		s, _ := data.(string)
		return strings.TrimSpace(s) != ""
	},
}

// NotEmptyArrayKeyword fails empty arrays.
var NotEmptyArrayKeyword = Keyword{
	Name:  "isNotEmptyArray",
	Types: []string{"array"},
	Validate: func(_, data any) bool {
		a, _ := data.([]any)
		return len(a) != 0
	},
}

// PasswordKeyword enforces IsPassword on strings.
var PasswordKeyword = Keyword{
	Name:  "isPassword",
	Types: []string{"string"},
	Validate: func(_, data any) bool {
		s, _ := data.(string)
		return IsPassword(s)
	},
}

// IsPassword reports whether s is 6 to 20 characters long and contains at
// least one digit, one lowercase and one uppercase ASCII letter.
func IsPassword(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 6 || n > 20 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	return digit && lower && upper
}

func builtinKeywords() []Keyword {
	return []Keyword{NotEmptyKeyword, NotEmptyArrayKeyword, PasswordKeyword}
}

// reservedKeywords are handled by the engine and cannot be overridden.
var reservedKeywords = map[string]bool{
	"$ref": true, "$id": true, "$schema": true, "type": true, "enum": true, "const": true,
	"properties": true, "patternProperties": true, "additionalProperties": true,
	"required": true, "minProperties": true, "maxProperties": true, "items": true,
	"additionalItems": true, "minItems": true, "maxItems": true, "uniqueItems": true,
	"contains": true, "minLength": true, "maxLength": true, "pattern": true, "format": true,
	"minimum": true, "maximum": true, "exclusiveMinimum": true, "exclusiveMaximum": true,
	"multipleOf": true, "allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"if": true, "then": true, "else": true, "default": true, "definitions": true, "$defs": true,
}

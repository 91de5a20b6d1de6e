// Package i18n renders validation messages for keyword failures.
package i18n

import (
	"fmt"
	"strings"
)

// Translator renders the message for a failed keyword. params carries the
// structured error parameters (for example "limit", "missingProperty").
type Translator interface {
	Message(keyword string, params map[string]any) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

// Dictionary returns the built-in Translator for lang ("en" or "ja"). Unknown
// languages fall back to English.
func Dictionary(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}

// Default returns the English dictionary.
func Default() Translator { return dictTranslator{lang: "en"} }

func (t dictTranslator) Message(keyword string, params map[string]any) string {
	if t.lang == "ja" {
		if msg, ok := japanese(keyword, params); ok {
			return msg
		}
	}
	return english(keyword, params)
}

func english(keyword string, p map[string]any) string {
	switch keyword {
	case "type":
		return "should be " + str(p["type"])
	case "required":
		return fmt.Sprintf("should have required property '%s'", str(p["missingProperty"]))
	case "additionalProperties":
		return "should NOT have additional properties"
	case "enum":
		return "should be equal to one of the allowed values"
	case "const":
		return "should be equal to constant"
	case "minLength":
		return fmt.Sprintf("should NOT be shorter than %v characters", p["limit"])
	case "maxLength":
		return fmt.Sprintf("should NOT be longer than %v characters", p["limit"])
	case "pattern":
		return fmt.Sprintf("should match pattern \"%s\"", str(p["pattern"]))
	case "format":
		return fmt.Sprintf("should match format \"%s\"", str(p["format"]))
	case "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum":
		return fmt.Sprintf("should be %s %v", str(p["comparison"]), p["limit"])
	case "multipleOf":
		return fmt.Sprintf("should be multiple of %v", p["multipleOf"])
	case "minItems":
		return fmt.Sprintf("should NOT have fewer than %v items", p["limit"])
	case "maxItems", "additionalItems":
		return fmt.Sprintf("should NOT have more than %v items", p["limit"])
	case "uniqueItems":
		return fmt.Sprintf("should NOT have duplicate items (items ## %v and %v are identical)", p["j"], p["i"])
	case "contains":
		return "should contain a valid item"
	case "dependencies":
		return fmt.Sprintf("should have property %s when property %s is present", str(p["missingProperty"]), str(p["property"]))
	case "propertyNames":
		return fmt.Sprintf("property name '%s' is invalid", str(p["propertyName"]))
	case "minProperties":
		return fmt.Sprintf("should NOT have fewer than %v properties", p["limit"])
	case "maxProperties":
		return fmt.Sprintf("should NOT have more than %v properties", p["limit"])
	case "anyOf":
		return "should match some schema in anyOf"
	case "oneOf":
		return "should match exactly one schema in oneOf"
	case "not":
		return "should NOT be valid"
	case "if":
		return fmt.Sprintf("should match \"%s\" schema", str(p["failingKeyword"]))
	case "false schema":
		return "boolean schema is false"
	case "isNotEmpty", "isNotEmptyArray":
		return "must have a value"
	case "isPassword":
		return "must be 6-20 characters long and contain at least one digit, one lowercase and one uppercase letter"
	}
	return "should pass \"" + keyword + "\" keyword validation"
}

func japanese(keyword string, p map[string]any) (string, bool) {
	switch keyword {
	case "type":
		return str(p["type"]) + " 型である必要があります", true
	case "required":
		return fmt.Sprintf("必須プロパティ '%s' がありません", str(p["missingProperty"])), true
	case "additionalProperties":
		return "未知のプロパティがあります", true
	case "enum":
		return "許可された値のいずれかである必要があります", true
	case "minLength":
		return fmt.Sprintf("%v 文字以上である必要があります", p["limit"]), true
	case "maxLength":
		return fmt.Sprintf("%v 文字以下である必要があります", p["limit"]), true
	case "format":
		return fmt.Sprintf("形式 \"%s\" に一致する必要があります", str(p["format"])), true
	case "isNotEmpty", "isNotEmptyArray":
		return "値を入力してください", true
	case "isPassword":
		return "6〜20文字で、数字・小文字・大文字をそれぞれ1文字以上含める必要があります", true
	}
	return "", false
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	}
	return fmt.Sprint(v)
}

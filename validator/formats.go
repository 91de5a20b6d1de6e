package validator

import (
	"time"

	playground "github.com/go-playground/validator/v10"
)

// formatTags maps JSON Schema format names to validator tags.
var formatTags = map[string]string{
	"email": "email",
	"uri":   "uri",
	"uuid":  "uuid",
	"ipv4":  "ipv4",
}

// builtinFormats returns the format checks every validator starts with. Tag
// backed formats share tags, which is safe for concurrent use.
func builtinFormats(tags *playground.Validate) map[string]FormatFunc {
	formats := map[string]FormatFunc{
		"date-time": isDateTime,
		"date":      isDate,
		"time":      isTime,
	}
	for name, tag := range formatTags {
		formats[name] = func(s string) bool { return tags.Var(s, tag) == nil }
	}
	return formats
}

func isDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

func isDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func isTime(s string) bool {
	for _, layout := range []string{"15:04:05Z07:00", "15:04:05.999999999Z07:00", time.TimeOnly} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

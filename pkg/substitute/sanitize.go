package substitute

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// Sanitize normalises one untrusted value for insertion into legal prose. The
// result contains no markup, no '{' or '}' and no control characters, and is
// a single line. It may be empty.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(sanitizer().Sanitize(trimmed))
	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r == '{' || r == '}':
			return -1
		case unicode.IsControl(r):
			return ' '
		default:
			return r
		}
	}, cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

func sanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		valuePolicy = bluemonday.StrictPolicy()
	})
	return valuePolicy
}

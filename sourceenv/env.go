package sourceenv

import (
	"regexp"
	"strings"
)

// placeholder matches ${NAME}. NAME may not contain whitespace or a closing brace.
var placeholder = regexp.MustCompile(`\$\{([^}\s]+)\}`)

// Lookup finds name in environ ("KEY=value" entries) ignoring case.
// The first matching entry wins.
func Lookup(environ []string, name string) (string, bool) {
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

// Getenv adapts environ to a func(string) string that ignores case.
func Getenv(environ []string) func(string) string {
	return func(name string) string {
		value, _ := Lookup(environ, name)
		return value
	}
}

// Expand replaces every ${NAME} in s with the matching environment value.
// Placeholders without a matching variable are left untouched.
func Expand(s string, environ []string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := Lookup(environ, name); ok {
			return value
		}
		return match
	})
}

// ExpandAll applies Expand to every string leaf of value and returns a copy.
// Mappings and sequences are rebuilt; other scalars are returned unchanged.
func ExpandAll(value any, environ []string) any {
	switch v := value.(type) {
	case string:
		return Expand(v, environ)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			out[key] = ExpandAll(child, environ)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = ExpandAll(child, environ)
		}
		return out
	default:
		return value
	}
}

package normalize

import (
	"sort"
	"strings"
)

// SplitKey splits a dotted settings key into its segments.
// Examples:
//   - "smtp.password" → ["smtp", "password"]
//   - "timeout" → ["timeout"]
//   - "" → [""]
func SplitKey(key string) []string {
	return strings.Split(key, ".")
}

// JoinKey joins segments back into a dotted key, skipping an empty prefix.
// Examples:
//   - JoinKey("database", "host") → "database.host"
//   - JoinKey("", "host") → "host"
func JoinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

// LookupFold returns the value stored under key in m and the key it was stored under.
// An exact match wins. Otherwise the first key, in sorted order, that matches
// case-insensitively is used so the result does not depend on map iteration.
func LookupFold(m map[string]any, key string) (any, string, bool) {
	if v, ok := m[key]; ok {
		return v, key, true
	}

	var candidates []string
	for k := range m {
		if strings.EqualFold(k, key) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return nil, "", false
	}
	sort.Strings(candidates)
	return m[candidates[0]], candidates[0], true
}

// Walk follows a dotted key through nested mappings and returns the value
// with the exact path it was found under.
// Intermediate segments match exactly; the final segment uses LookupFold.
func Walk(tree map[string]any, key string) (any, string, bool) {
	segments := SplitKey(key)
	level := tree

	for _, segment := range segments[:len(segments)-1] {
		next, ok := level[segment].(map[string]any)
		if !ok {
			return nil, "", false
		}
		level = next
	}

	value, last, ok := LookupFold(level, segments[len(segments)-1])
	if !ok {
		return nil, "", false
	}
	prefix := strings.Join(segments[:len(segments)-1], ".")
	return value, JoinKey(prefix, last), true
}

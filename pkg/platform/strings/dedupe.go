// Package strings provides string slice helpers used by request models.
package strings

import (
	"strings"
	"unicode"
)

// Dedupe removes repeated values from a slice, keeping first occurrences in
// order. Values are compared byte for byte; namespaces are opaque so neither
// case nor whitespace is normalized.
//
// Example:
//
//	Dedupe([]string{"alpha", "beta", "alpha", ""})
//	// Returns: []string{"alpha", "beta", ""}
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// ToSnakeCase converts a Go field name such as "BufferSize" to "buffer_size".
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

package match

import (
	"strings"
	"unicode"
)

// Normalize folds case and drops separators so that "customer_name",
// "customerName" and "CustomerName" compare equal.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the String() value of unrecognized enum values.
const UnknownStr = "unknown"

// SnakeCase converts a Go identifier to snake_case, keeping initialisms
// together: "HTTPServer" -> "http_server", "InvoiceV2" -> "invoice_v2".
func SnakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sb.WriteByte('_')
				}
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

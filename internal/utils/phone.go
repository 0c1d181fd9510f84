package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizePhone converts a Ugandan phone number to the local 0-prefixed
// form used throughout the branch records. Accepted inputs:
//
//	+256712345678, 256712345678, 0712345678, 712345678
//
// all normalize to "0712345678". Separators and spaces are stripped.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range strings.TrimPrefix(strings.TrimSpace(raw), "+") {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		} else if r != ' ' && r != '-' && r != '(' && r != ')' {
			return "", fmt.Errorf("phone number contains invalid character %q", r)
		}
	}

	n := digits.String()
	switch {
	case strings.HasPrefix(n, "256") && len(n) == 12:
		return "0" + n[3:], nil
	case strings.HasPrefix(n, "0") && len(n) == 10:
		return n, nil
	case len(n) == 9 && !strings.HasPrefix(n, "0"):
		return "0" + n, nil
	default:
		return "", fmt.Errorf("unrecognized phone number format: %s", raw)
	}
}

// Package identity canonicalizes free-text entity labels into matching keys.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Normalize returns the matching key for a raw label: surrounding and
// repeated whitespace removed, NFC composed and case folded.
// Two labels with the same key are the same entity. Blank input yields "".
func Normalize(label string) string {
	collapsed := strings.Join(strings.Fields(label), " ")
	if collapsed == "" {
		return ""
	}
	return norm.NFC.String(folder.String(norm.NFC.String(collapsed)))
}

// IsBlank reports whether label has no non-space characters.
func IsBlank(label string) bool {
	return strings.TrimSpace(label) == ""
}

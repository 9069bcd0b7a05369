// Package normalize provides text normalization for query matching.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold lowercases text with full unicode case folding and collapses
// runs of whitespace, so "Straße  " matches "STRASSE".
func Fold(s string) string {
	return strings.Join(strings.Fields(folder.String(norm.NFC.String(s))), " ")
}

// ContainsFold reports whether s contains substr under case folding.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// EqualFold reports whether two strings are equal under case folding
// and whitespace collapse.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

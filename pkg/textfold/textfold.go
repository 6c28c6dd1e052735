// Package textfold implements locale-insensitive "contains" matching for
// search boxes: case and diacritics are ignored, so "Ёлка" matches "елка" and
// "Café" matches "cafe".
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the comparison form of s.
//
// 1. Decomposes to NFD (é → e + combining acute).
// 2. Drops non-spacing marks.
// 3. Recomposes and applies Unicode case folding.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return cases.Fold().String(result)
}

// Contains reports whether needle occurs in haystack after folding both.
// An empty or blank needle matches everything.
func Contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

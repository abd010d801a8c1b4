// Package geomatch decides whether an extracted event location is relevant to
// a given business. City comparison is case- and accent-insensitive so that
// "Bogotá", "BOGOTA" and "bogota" all refer to the same place.
package geomatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases text and strips diacritics. It is safe on arbitrary prose,
// not just place names.
func Fold(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// NormalizeCity lowercases, trims and strips diacritics from a city name.
func NormalizeCity(name string) string {
	return strings.TrimSpace(Fold(name))
}

// SameCity compares two city names under normalization. Empty names never
// match anything, including each other.
func SameCity(a, b string) bool {
	na, nb := NormalizeCity(a), NormalizeCity(b)
	return na != "" && na == nb
}

// Package answer compares learner answers against expected forms.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims, lowercases and strips combining marks after canonical
// decomposition, so accents are optional.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	// transform.Chain is stateful; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Match reports whether given equals expected after normalization. An empty
// answer never matches.
func Match(given, expected string) bool {
	g := Normalize(given)
	if g == "" {
		return false
	}
	return g == Normalize(expected)
}

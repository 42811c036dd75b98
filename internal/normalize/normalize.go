// Package normalize canonicalizes free-text strings into comparable tokens.
//
// Token is the single source of truth for token identity across the engine:
// every entry in every derived token set, every alias index key, and every
// query word passes through it. The alias index, the enrichment pipeline,
// and the ranking engine all assume its output shape.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matches runs of anything outside [a-z0-9] (post-lowercasing).
var nonTokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// Token converts a string to a canonical comparable token.
//
// Normalization rules:
//  1. Lowercase (ASCII case folding)
//  2. Collapse every run of non-[a-z0-9] characters to a single space
//  3. Trim leading/trailing space
//
// Idempotent: Token(Token(x)) == Token(x) for all x.
//
// Token does NOT transliterate. Unicode diacritics survive only as dropped
// characters ("café" → "caf"); diacritic stripping is a separate pre-step
// (Fold) applied upstream during human-name slug generation, never to
// general free text.
func Token(s string) string {
	s = strings.ToLower(s)
	s = nonTokenRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips Unicode diacritics (e.g. "Élodie" → "Elodie"). Used when
// generating slugs from human names; not part of general tokenization.
func Fold(s string) string {
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return result
}

// NameSlug generates a comparable slug token from a human name: diacritic
// folding followed by tokenization. "José García" → "jose garcia".
func NameSlug(name string) string {
	return Token(Fold(name))
}

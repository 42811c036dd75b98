package token

import (
	"regexp"
	"strings"

	"github.com/openstage/directory-server/internal/normalize"
)

var (
	// Four-digit years, scanned on the raw string before normalization.
	yearRe = regexp.MustCompile(`\b(19|20)\d\d\b`)

	// List-ish field separators: comma, semicolon, pipe, newline.
	listSepRe = regexp.MustCompile(`[\n,;|]+`)
)

// seasonVocabulary is the fixed set of season words matched as substrings
// of the normalized string. The hyphenated and run-together spellings of
// j-term and may-term each map to their own normalized token.
//
//nolint:gochecknoglobals // Fixed vocabulary
var seasonVocabulary = []string{
	"spring", "summer", "fall", "autumn", "winter",
	"j term", "jterm", "may term", "mayterm",
}

// AddPhrase adds the full normalized string as one token plus each
// whitespace-separated word as its own token, all into the same set.
// This lets "new york", "new", and "york" match independently.
func AddPhrase(s *Set, raw string) {
	phrase := normalize.Token(raw)
	if phrase == "" {
		return
	}
	s.add(phrase)
	for _, word := range strings.Fields(phrase) {
		s.add(word)
	}
}

// AddYearSeason adds phrase tokens plus year and season tokens. Years are
// scanned on the raw pre-normalization string; season words are matched as
// substrings of the normalized string.
func AddYearSeason(s *Set, raw string) {
	AddPhrase(s, raw)
	for _, year := range yearRe.FindAllString(raw, -1) {
		s.add(year)
	}
	phrase := normalize.Token(raw)
	for _, season := range seasonVocabulary {
		if strings.Contains(phrase, season) {
			s.add(season)
		}
	}
}

// SplitList splits a list-ish field on commas, semicolons, pipes, and
// newlines, trims each piece, and drops empties. Order is preserved.
func SplitList(raw string) []string {
	parts := listSepRe.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AddList splits a list-ish field and runs phrase extraction on each
// surviving piece independently.
func AddList(s *Set, raw string) {
	for _, piece := range SplitList(raw) {
		AddPhrase(s, piece)
	}
}

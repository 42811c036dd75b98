package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// fieldBoost is a weighted field of the fallback query. Name matches count
// most; the remaining token categories taper off in the same order tier 1
// values them.
type fieldBoost struct {
	field string
	boost float64
}

// fallbackFields is the fixed weighted field list.
//
//nolint:gochecknoglobals // Fixed tuning table
var fallbackFields = []fieldBoost{
	{"name", 3.0},
	{"identity", 2.4},
	{"role", 2.0},
	{"program", 1.8},
	{"production", 1.6},
	{"festival", 1.4},
	{"location", 1.2},
	{"bio", 1.0},
	{"status", 0.8},
	{"season", 0.7},
	{"language", 0.6},
	{"alias", 0.5},
}

// fuzziness is tuned for moderate typo tolerance: edit distance 2 forgives
// a transposed or dropped letter pair without matching everything.
const fuzziness = 2

// buildFallbackQuery constructs the weighted approximate query: for every
// field, a match query (which applies analyzer fuzz-free matching) plus a
// fuzzy query, OR-ed together. Character position carries no weight.
func buildFallbackQuery(q string) query.Query {
	queries := make([]query.Query, 0, len(fallbackFields)*2)

	for _, fb := range fallbackFields {
		match := bleve.NewMatchQuery(q)
		match.SetField(fb.field)
		match.SetBoost(fb.boost)
		queries = append(queries, match)

		fuzzy := bleve.NewMatchQuery(q)
		fuzzy.SetField(fb.field)
		fuzzy.SetFuzziness(fuzziness)
		fuzzy.SetBoost(fb.boost * 0.5)
		queries = append(queries, fuzzy)
	}

	return bleve.NewDisjunctionQuery(queries...)
}

// Package token derives searchable token sets from free-text record fields.
//
// A Set is a deduplicated string set with deterministic insertion order.
// All tokens entering a Set pass through the normalizer first, so set
// membership checks and alias index keys always compare like with like.
package token

// Set is an ordered, deduplicated collection of normalized tokens.
// The zero value is not usable; create with NewSet.
type Set struct {
	seen  map[string]struct{}
	items []string
}

// NewSet creates an empty token set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// add inserts an already-normalized token, skipping empties and duplicates.
func (s *Set) add(tok string) {
	if tok == "" {
		return
	}
	if _, ok := s.seen[tok]; ok {
		return
	}
	s.seen[tok] = struct{}{}
	s.items = append(s.items, tok)
}

// Has reports whether the set contains the exact token.
func (s *Set) Has(tok string) bool {
	_, ok := s.seen[tok]
	return ok
}

// Len returns the number of tokens.
func (s *Set) Len() int {
	return len(s.items)
}

// Values returns the tokens in insertion order. The returned slice is a
// copy and never nil.
func (s *Set) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

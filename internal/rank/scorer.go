// Package rank implements the two-tier ranking engine: a deterministic
// weighted scorer (tier 1) over the enriched corpus, with a Bleve-backed
// approximate fallback (tier 2) for everything the scorer did not surface.
package rank

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/openstage/directory-server/internal/alias"
	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/normalize"
	"github.com/openstage/directory-server/internal/token"
)

// Tier-1 point values. Empirically tuned; treat as tunable parameters, not
// fundamental invariants, but change them all together or relative ranking
// shifts in surprising ways.
const (
	pointsAliasExact   = 180 // alias index hit on the whole query
	pointsNameExact    = 150 // full-name exact match
	pointsQuotedPhrase = 150 // quoted substring in name/role/bio
	pointsProgramExact = 150 // program token equal to the whole query
	pointsRoleExact    = 300 // declared role equal to the query, per role

	pointsNameLocationCombo = 250 // name word + location word in one query

	pointsNameWord     = 80
	pointsRoleWord     = 120
	pointsProgramWord  = 90 // program or production token
	pointsBioWord      = 50
	pointsStatusWord   = 80
	pointsIdentityWord = 80
	pointsLocationWord = 100

	bonusPerExtraToken = 50  // per matched word beyond the first
	bonusFullCoverage  = 150 // every query word matched something

	penaltyLowCoverage = 50 // multi-word query, coverage below threshold

	// Tier-1 inclusion gates.
	inclusionScore    = 120
	inclusionCoverage = 0.6
)

var quotedRe = regexp.MustCompile(`"([^"]+)"`)

// Query is a parsed free-text query.
type Query struct {
	Raw        string
	Normalized string
	Words      []string
	// Quoted holds the normalized contents of "quoted" query segments.
	Quoted []string
}

// ParseQuery normalizes the raw query and extracts its words and quoted
// phrases.
func ParseQuery(raw string) *Query {
	q := &Query{
		Raw:        raw,
		Normalized: normalize.Token(raw),
	}
	q.Words = strings.Fields(q.Normalized)
	for _, m := range quotedRe.FindAllStringSubmatch(raw, -1) {
		if phrase := normalize.Token(m[1]); phrase != "" {
			q.Quoted = append(q.Quoted, phrase)
		}
	}
	return q
}

// indexedRecord precomputes the per-record lookup structures tier 1 needs,
// built once at engine construction so per-query scoring allocates almost
// nothing.
type indexedRecord struct {
	rec *domain.EnrichedRecord

	nameNorm  string
	nameWords map[string]struct{}

	// declaredRoles holds each role entry normalized as a whole phrase.
	declaredRoles []string

	// locationNorm is the whole location, normalized, for the combo rule.
	locationNorm string

	role, program, production, bio,
	status, identity, location map[string]struct{}

	// joined token text for quoted-substring checks.
	roleJoined, bioJoined string
}

func indexRecord(rec *domain.EnrichedRecord) *indexedRecord {
	ir := &indexedRecord{
		rec:          rec,
		nameNorm:     normalize.Token(rec.Name),
		locationNorm: normalize.Token(rec.Location),
		role:         toSet(rec.Tokens.Role),
		program:      toSet(rec.Tokens.Program),
		production:   toSet(rec.Tokens.Production),
		bio:          toSet(rec.Tokens.Bio),
		status:       toSet(rec.Tokens.Status),
		identity:     toSet(rec.Tokens.Identity),
		location:     toSet(rec.Tokens.Location),
		roleJoined:   strings.Join(rec.Tokens.Role, " "),
		bioJoined:    strings.Join(rec.Tokens.Bio, " "),
	}
	ir.nameWords = toSet(strings.Fields(ir.nameNorm))
	for _, r := range token.SplitList(rec.Roles) {
		if n := normalize.Token(r); n != "" {
			ir.declaredRoles = append(ir.declaredRoles, n)
		}
	}
	return ir
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

// score runs the tier-1 deterministic scorer for one record. The returned
// result carries the diagnostic reason trail; inclusion is decided by the
// caller against the score/coverage gates.
func (ir *indexedRecord) score(q *Query, idx alias.Index) *domain.ScoredResult {
	res := &domain.ScoredResult{Record: ir.rec}

	award := func(points int, reason string) {
		res.Score += points
		res.Reasons = append(res.Reasons, fmt.Sprintf("%s (+%d)", reason, points))
	}

	// Whole-query match classes.
	if ir.matchesAlias(q.Normalized, idx) {
		award(pointsAliasExact, "alias index exact match")
	}
	if ir.nameNorm != "" && ir.nameNorm == q.Normalized {
		award(pointsNameExact, "full name exact match")
	}
	for _, phrase := range q.Quoted {
		if ir.containsPhrase(phrase) {
			award(pointsQuotedPhrase, fmt.Sprintf("quoted phrase %q", phrase))
		}
	}
	if _, ok := ir.program[q.Normalized]; ok && q.Normalized != "" {
		award(pointsProgramExact, "program exact match")
	}
	for _, role := range ir.declaredRoles {
		if role == q.Normalized {
			award(pointsRoleExact, fmt.Sprintf("declared role %q", role))
		}
	}
	if ir.nameLocationCombo(q.Words) {
		award(pointsNameLocationCombo, "name and location combo")
	}

	// Per-word match classes: additive, independent, repeatable per word
	// occurrence. Coverage accounting below is over distinct words only,
	// so a repeated word earns its points twice but counts once.
	matchedWords := make(map[string]struct{}, len(q.Words))
	distinctWords := make(map[string]struct{}, len(q.Words))
	for _, word := range q.Words {
		distinctWords[word] = struct{}{}
		matched := false
		hit := func(set map[string]struct{}, points int, class string) {
			if _, ok := set[word]; ok {
				award(points, fmt.Sprintf("%s word %q", class, word))
				matched = true
			}
		}
		hit(ir.nameWords, pointsNameWord, "name")
		hit(ir.role, pointsRoleWord, "role")
		if _, pOK := ir.program[word]; pOK {
			award(pointsProgramWord, fmt.Sprintf("program word %q", word))
			matched = true
		} else if _, ok := ir.production[word]; ok {
			award(pointsProgramWord, fmt.Sprintf("production word %q", word))
			matched = true
		}
		hit(ir.bio, pointsBioWord, "bio")
		hit(ir.status, pointsStatusWord, "status")
		hit(ir.identity, pointsIdentityWord, "identity")
		hit(ir.location, pointsLocationWord, "location")

		if matched {
			matchedWords[word] = struct{}{}
		}
	}

	tokensMatched := len(matchedWords)
	total := len(distinctWords)
	if total > 0 {
		res.Coverage = float64(tokensMatched) / float64(total)
	}

	if tokensMatched > 1 {
		award(bonusPerExtraToken*(tokensMatched-1),
			fmt.Sprintf("%d words matched", tokensMatched))
	}
	if total > 0 && tokensMatched == total {
		award(bonusFullCoverage, "full coverage")
	}
	if total > 1 && res.Coverage < inclusionCoverage {
		res.Score -= penaltyLowCoverage
		res.Reasons = append(res.Reasons,
			fmt.Sprintf("low coverage %.2f (-%d)", res.Coverage, penaltyLowCoverage))
	}

	return res
}

// included applies the tier-1 inclusion gates.
func included(res *domain.ScoredResult) bool {
	return res.Score >= inclusionScore || res.Coverage >= inclusionCoverage
}

// matchesAlias reports whether the alias index resolves the whole query to
// this record (by canonical slug, own slug, or id).
func (ir *indexedRecord) matchesAlias(normalized string, idx alias.Index) bool {
	if normalized == "" || idx == nil {
		return false
	}
	for _, id := range idx[normalized] {
		if id == ir.rec.CanonicalSlug || id == ir.rec.Slug || id == ir.rec.ID {
			return true
		}
	}
	return false
}

// containsPhrase checks a quoted phrase against the name, role tokens, and
// bio tokens as a substring, the way a reader would expect quotes to work.
func (ir *indexedRecord) containsPhrase(phrase string) bool {
	return strings.Contains(ir.nameNorm, phrase) ||
		strings.Contains(ir.roleJoined, phrase) ||
		strings.Contains(ir.bioJoined, phrase)
}

// nameLocationCombo reports the one-time combo: at least one query word in
// the name AND at least one query word equal to the normalized location.
func (ir *indexedRecord) nameLocationCombo(words []string) bool {
	if ir.locationNorm == "" {
		return false
	}
	var nameHit, locationHit bool
	for _, w := range words {
		if _, ok := ir.nameWords[w]; ok {
			nameHit = true
		}
		if w == ir.locationNorm {
			locationHit = true
		}
	}
	return nameHit && locationHit
}

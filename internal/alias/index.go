// Package alias builds the directory's alias index: a map from normalized
// alias phrase to the set of record identifiers it should resolve to, built
// from the external program and production maps plus a small manual
// override table.
package alias

import (
	"regexp"
	"sort"
	"strings"

	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/errors"
	"github.com/openstage/directory-server/internal/normalize"
)

// Index maps normalized alias phrases to deduplicated, sorted record
// identifier sets. Built once per corpus load; byte-for-byte identical
// given identical inputs.
type Index map[string][]string

var (
	// Strips a known categorical prefix from program/production names so
	// "Workshop: Devised Theater" also aliases as "devised theater".
	categoryPrefixRe = regexp.MustCompile(`(?i)^(?:the\s+)?(?:workshop|intensive|residency|lab|program|production|festival)\b[:\s-]*`)

	// Festival banner fragment separators: colon, em-dash, hyphen.
	festivalSepRe = regexp.MustCompile(`[:\x{2014}-]+`)
)

// manualOverrides is the static one-hop override table. For each source
// alias, records already indexed under any target alias are unioned into
// the source alias too. One hop only; chains are not followed.
//
//nolint:gochecknoglobals // Static curated table
var manualOverrides = map[string][]string{
	"slovakia":      {"heart of europe"},
	"nyc":           {"new york"},
	"new york city": {"new york"},
	"la":            {"los angeles"},
	"edinburgh":     {"fringe festival"},
}

// Build constructs the alias index from the external maps. Pure and
// deterministic: no clock, no randomness, identifier sets sorted.
func Build(maps domain.Maps) Index {
	accum := make(map[string]map[string]struct{})

	union := func(alias string, artists map[string]bool) {
		key := normalize.Token(alias)
		if key == "" || len(artists) == 0 {
			return
		}
		set, ok := accum[key]
		if !ok {
			set = make(map[string]struct{})
			accum[key] = set
		}
		for id := range artists {
			set[id] = struct{}{}
		}
	}

	for _, p := range maps.Programs {
		for _, a := range entryAliases(p.Title, p.Program, p.Location, p.Year) {
			union(a, p.Artists)
		}
	}
	for _, p := range maps.Productions {
		for _, a := range entryAliases(p.Title, p.Production, p.Location, p.Year) {
			union(a, p.Artists)
		}
		for _, frag := range FestivalFragments(p.Festival) {
			union(frag, p.Artists)
		}
	}

	applyOverrides(accum, manualOverrides)

	idx := make(Index, len(accum))
	for key, set := range accum {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		idx[key] = ids
	}
	return idx
}

// applyOverrides unions each override target's identifier set into its
// source alias. Target sets are snapshotted before any override applies:
// the result is independent of map iteration order, and a source that is
// itself another override's target never picks up that override's
// additions (one hop, never chased).
func applyOverrides(accum map[string]map[string]struct{}, overrides map[string][]string) {
	snapshot := make(map[string]map[string]struct{}, len(overrides))
	for _, targets := range overrides {
		for _, target := range targets {
			key := normalize.Token(target)
			if _, seen := snapshot[key]; seen {
				continue
			}
			if set, ok := accum[key]; ok {
				copied := make(map[string]struct{}, len(set))
				for id := range set {
					copied[id] = struct{}{}
				}
				snapshot[key] = copied
			}
		}
	}

	for source, targets := range overrides {
		key := normalize.Token(source)
		for _, target := range targets {
			existing, ok := snapshot[normalize.Token(target)]
			if !ok {
				continue
			}
			set, ok := accum[key]
			if !ok {
				set = make(map[string]struct{})
				accum[key] = set
			}
			for id := range existing {
				set[id] = struct{}{}
			}
		}
	}
}

// entryAliases computes the fixed alias set for one program/production
// entry: full title, name alone, name with the categorical prefix
// stripped, location alone, and the name+year / name+location /
// name+location+year combinations.
func entryAliases(title, name, location, year string) []string {
	out := make([]string, 0, 8)
	if title != "" {
		out = append(out, title)
	}
	if name != "" {
		out = append(out, name)
		if stripped := categoryPrefixRe.ReplaceAllString(name, ""); stripped != name && stripped != "" {
			out = append(out, stripped)
		}
	}
	if location != "" {
		out = append(out, location)
	}
	if name != "" && year != "" {
		out = append(out, name+" "+year)
	}
	if name != "" && location != "" {
		out = append(out, name+" "+location)
		if year != "" {
			out = append(out, name+" "+location+" "+year)
		}
	}
	return out
}

// FestivalFragments splits a festival banner on colon, em-dash, and hyphen
// into separate alias fragments, plus the full banner itself.
func FestivalFragments(festival string) []string {
	if festival == "" {
		return nil
	}
	out := []string{festival}
	for _, frag := range festivalSepRe.Split(festival, -1) {
		frag = strings.TrimSpace(frag)
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out
}

// Lookup returns the identifier set for the normalized form of the given
// phrase. Absent aliases return nil; that is a valid non-match, not an
// error.
func (idx Index) Lookup(phrase string) []string {
	return idx[normalize.Token(phrase)]
}

// Contains reports whether the alias resolves to the given identifier.
func (idx Index) Contains(phrase, id string) bool {
	for _, got := range idx.Lookup(phrase) {
		if got == id {
			return true
		}
	}
	return false
}

// Validate checks that every identifier the index references exists in the
// known-identifier set. Called at corpus construction so per-query
// evaluation stays infallible.
func (idx Index) Validate(known map[string]struct{}) error {
	var missing []string
	for aliasKey, ids := range idx {
		for _, id := range ids {
			if _, ok := known[id]; !ok {
				missing = append(missing, aliasKey+"→"+id)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.CorpusMismatch("alias index references %d unknown record identifiers: %s",
			len(missing), strings.Join(missing, ", "))
	}
	return nil
}

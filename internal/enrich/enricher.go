// Package enrich builds the searchable corpus: for every profile record it
// derives the canonical slug, resolves the headshot, and populates the
// token sets the ranking engine scores against.
//
// Design philosophy, shared with the rest of the engine:
//   - Graceful degradation: missing data yields empty sets, not errors
//   - Idempotent: enriching the same record twice gives the same result
//   - Pure: reads only the injected read-only maps, writes only its output
package enrich

import (
	"log/slog"
	"strconv"

	"github.com/openstage/directory-server/internal/alias"
	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/media"
	"github.com/openstage/directory-server/internal/normalize"
	"github.com/openstage/directory-server/internal/token"
)

// Enricher derives EnrichedRecords from raw records and collaborator data.
type Enricher struct {
	maps   domain.Maps
	logger *slog.Logger
}

// New creates an enricher over the given read-only maps.
// A nil logger discards enrichment diagnostics.
func New(maps domain.Maps, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Enricher{maps: maps, logger: logger}
}

// Enrich builds the full enriched corpus. Each record is enriched
// independently from shared read-only inputs, so the loop is safe to
// parallelize later if corpus sizes demand it.
func (e *Enricher) Enrich(records []domain.Record, candidates []domain.MediaCandidate) []*domain.EnrichedRecord {
	byOwner := groupCandidates(candidates)

	out := make([]*domain.EnrichedRecord, 0, len(records))
	for i := range records {
		out = append(out, e.enrichOne(&records[i], byOwner))
	}

	e.logger.Debug("corpus enriched", "records", len(out), "media_candidates", len(candidates))
	return out
}

func (e *Enricher) enrichOne(rec *domain.Record, byOwner map[string][]domain.MediaCandidate) *domain.EnrichedRecord {
	enriched := &domain.EnrichedRecord{Record: *rec}

	// Canonical slug: external resolution, falling back to the record's own.
	canonical, group, ok := e.maps.SlugAliases.Resolve(rec.Slug)
	if !ok {
		canonical, group = rec.Slug, []string{rec.Slug}
	}
	enriched.CanonicalSlug = canonical

	// Headshot: first non-empty candidate list wins, trying identifiers
	// from most to least specific.
	res := media.Resolve(candidatesFor(rec, canonical, byOwner), rec)
	enriched.ResolvedAssetURL = res.URL
	enriched.AssetCacheKey = res.CacheKey

	sets := newSetBundle()

	// Catch-all: every listed field lands in the alias set so any stored
	// value is findable by free text.
	for _, rule := range catchAllFields {
		rule.mode.extract(sets.alias, rule.value(rec))
	}

	// Dedicated sets for weighted scoring.
	token.AddList(sets.role, rec.Roles)
	token.AddPhrase(sets.location, rec.Location)
	token.AddYearSeason(sets.bio, rec.Bio)
	token.AddYearSeason(sets.bio, rec.CurrentWork)
	token.AddPhrase(sets.identity, rec.Name)
	token.AddPhrase(sets.identity, normalize.Fold(rec.Name))
	token.AddPhrase(sets.identity, rec.Pronouns)
	token.AddList(sets.status, rec.StatusFlags)

	e.addRosterTokens(sets, normalizedSlugSet(rec, group))
	addLanguageTokens(sets.language, rec)

	enriched.Tokens = sets.freeze()
	return enriched
}

// addRosterTokens cross-references the record's normalized slug-alias set
// against the program and production rosters.
func (e *Enricher) addRosterTokens(sets *setBundle, slugs map[string]struct{}) {
	onRoster := func(artists map[string]bool) bool {
		for artist := range artists {
			if _, ok := slugs[normalize.Token(artist)]; ok {
				return true
			}
		}
		return false
	}

	for _, p := range e.maps.Programs {
		if !onRoster(p.Artists) {
			continue
		}
		token.AddYearSeason(sets.program, p.Title)
		token.AddPhrase(sets.program, p.Program)
		token.AddPhrase(sets.program, p.Location)
		token.AddPhrase(sets.program, p.Year)
		e.addSeasonTokens(sets, p.Season)
	}

	for _, p := range e.maps.Productions {
		if !onRoster(p.Artists) {
			continue
		}
		token.AddYearSeason(sets.production, p.Title)
		token.AddPhrase(sets.production, p.Production)
		token.AddPhrase(sets.production, p.Location)
		token.AddPhrase(sets.production, p.Year)
		for _, frag := range alias.FestivalFragments(p.Festival) {
			token.AddPhrase(sets.festival, frag)
		}
		e.addSeasonTokens(sets, p.Season)
	}
}

// addSeasonTokens resolves a season number against the season table and
// emits the season's slug, label, year range, and project names.
// Unparseable or out-of-range numbers skip the derivation.
func (e *Enricher) addSeasonTokens(sets *setBundle, rawNumber string) {
	n, err := strconv.Atoi(rawNumber)
	if err != nil {
		return
	}
	season, ok := e.maps.Seasons.ByNumber(n)
	if !ok {
		return
	}
	token.AddPhrase(sets.season, season.Slug)
	token.AddPhrase(sets.season, season.SeasonTitle)
	token.AddYearSeason(sets.season, season.Years)
	for _, project := range season.Projects {
		token.AddPhrase(sets.season, project)
	}
}

// addLanguageTokens tokenizes the language field (tags as fallback) and
// maps recognized names and synonyms to one canonical token per language.
func addLanguageTokens(set *token.Set, rec *domain.Record) {
	pieces := token.SplitList(rec.Languages)
	if len(pieces) == 0 {
		pieces = token.SplitList(rec.Tags)
	}
	for _, piece := range pieces {
		token.AddPhrase(set, piece)
		if canon := normalize.LanguageToken(piece); canon != "" {
			token.AddPhrase(set, canon)
		}
	}
}

// groupCandidates indexes media candidates by their declared owner.
func groupCandidates(candidates []domain.MediaCandidate) map[string][]domain.MediaCandidate {
	byOwner := make(map[string][]domain.MediaCandidate)
	for _, c := range candidates {
		if c.RecordID == "" {
			continue
		}
		byOwner[c.RecordID] = append(byOwner[c.RecordID], c)
	}
	return byOwner
}

// candidatesFor finds the record's candidate list by trying, in order, the
// raw identifier, normalized identifier, slug, normalized slug, canonical
// slug, and normalized canonical slug.
func candidatesFor(rec *domain.Record, canonical string, byOwner map[string][]domain.MediaCandidate) []domain.MediaCandidate {
	keys := []string{
		rec.ID, normalize.Token(rec.ID),
		rec.Slug, normalize.Token(rec.Slug),
		canonical, normalize.Token(canonical),
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if list := byOwner[key]; len(list) > 0 {
			return list
		}
	}
	return nil
}

// normalizedSlugSet is the record's identity footprint for roster
// matching: its slug-alias group plus its own slug and id, normalized.
func normalizedSlugSet(rec *domain.Record, group []string) map[string]struct{} {
	set := make(map[string]struct{}, len(group)+2)
	for _, s := range group {
		if t := normalize.Token(s); t != "" {
			set[t] = struct{}{}
		}
	}
	if t := normalize.Token(rec.Slug); t != "" {
		set[t] = struct{}{}
	}
	if t := normalize.Token(rec.ID); t != "" {
		set[t] = struct{}{}
	}
	return set
}

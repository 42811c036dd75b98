package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/media"
)

func testRecord() domain.Record {
	return domain.Record{
		ID:          "rec-1",
		Slug:        "jane-doe",
		Name:        "Jane Doe",
		Email:       "jane@example.org",
		Pronouns:    "she/her",
		Location:    "Quito, Ecuador",
		Bio:         "Directed the Summer 2016 residency showcase.",
		CurrentWork: "Teaching at the conservatory",
		Roles:       "Actor, Director; Playwright",
		StatusFlags: "alum|faculty",
		Languages:   "Spanish, English",
		UpdatedAt:   "2023-01-15T00:00:00Z",
	}
}

func testEnrichMaps() domain.Maps {
	return domain.Maps{
		Programs: map[string]domain.ProgramEntry{
			"acting-2016": {
				Title:    "Summer Acting Intensive 2016",
				Program:  "Acting Intensive",
				Location: "Heart of Europe",
				Year:     "2016",
				Season:   "1",
				Artists:  map[string]bool{"jane-doe": true},
			},
		},
		Productions: map[string]domain.ProductionEntry{
			"tempest-2019": {
				Title:      "The Tempest",
				Production: "The Tempest",
				Location:   "New York",
				Year:       "2019",
				Festival:   "Fringe Festival: Edinburgh",
				Season:     "2",
				Artists:    map[string]bool{"jane-doe-old": true},
			},
		},
		Seasons: domain.SeasonTable{
			{Slug: "season-one", SeasonTitle: "Inaugural Season", Years: "2015-2016", Projects: []string{"Our Town"}},
			{Slug: "season-two", SeasonTitle: "Second Season", Years: "2018-2019"},
		},
		SlugAliases: domain.SlugAliasTable{
			{Canonical: "jane-doe", Aliases: []string{"jane-doe-old"}},
		},
	}
}

func enrichOne(t *testing.T, rec domain.Record, candidates []domain.MediaCandidate) *domain.EnrichedRecord {
	t.Helper()
	corpus := New(testEnrichMaps(), nil).Enrich([]domain.Record{rec}, candidates)
	require.Len(t, corpus, 1)
	return corpus[0]
}

func TestEnrich_CanonicalSlug(t *testing.T) {
	rec := testRecord()
	rec.Slug = "jane-doe-old"
	got := enrichOne(t, rec, nil)
	assert.Equal(t, "jane-doe", got.CanonicalSlug)
}

func TestEnrich_CanonicalSlugFallsBackToOwn(t *testing.T) {
	rec := testRecord()
	rec.Slug = "unknown-slug"
	got := enrichOne(t, rec, nil)
	assert.Equal(t, "unknown-slug", got.CanonicalSlug)
}

func TestEnrich_CatchAllContainsEveryField(t *testing.T) {
	got := enrichOne(t, testRecord(), nil)

	aliasSet := map[string]bool{}
	for _, tok := range got.Tokens.Alias {
		aliasSet[tok] = true
	}

	for _, want := range []string{
		"jane doe", "jane", "doe", // name phrase + words
		"jane example org",        // email
		"she her",                 // pronouns
		"quito ecuador", "quito",  // location
		"2016", "summer",          // year/season from bio
		"actor", "director", "playwright", // roles
		"alum", "faculty",
		"spanish", "english",
	} {
		assert.True(t, aliasSet[want], "alias set missing %q", want)
	}
}

func TestEnrich_RoleAndLocationSets(t *testing.T) {
	got := enrichOne(t, testRecord(), nil)

	assert.Contains(t, got.Tokens.Role, "actor")
	assert.Contains(t, got.Tokens.Role, "director")
	assert.Contains(t, got.Tokens.Location, "quito ecuador")
	assert.Contains(t, got.Tokens.Location, "ecuador")
	assert.Contains(t, got.Tokens.Bio, "2016")
	assert.Contains(t, got.Tokens.Bio, "summer")
	assert.Contains(t, got.Tokens.Identity, "jane doe")
	assert.Contains(t, got.Tokens.Status, "alum")
}

func TestEnrich_ProgramRosterTokens(t *testing.T) {
	got := enrichOne(t, testRecord(), nil)

	assert.Contains(t, got.Tokens.Program, "summer acting intensive 2016")
	assert.Contains(t, got.Tokens.Program, "acting intensive")
	assert.Contains(t, got.Tokens.Program, "heart of europe")
	// Season 1 derivation.
	assert.Contains(t, got.Tokens.Season, "season one")
	assert.Contains(t, got.Tokens.Season, "inaugural season")
	assert.Contains(t, got.Tokens.Season, "2015")
	assert.Contains(t, got.Tokens.Season, "our town")
}

func TestEnrich_ProductionRosterViaSlugAlias(t *testing.T) {
	// The production roster lists the record under its old slug; the
	// slug-alias group still links it.
	got := enrichOne(t, testRecord(), nil)

	assert.Contains(t, got.Tokens.Production, "the tempest")
	assert.Contains(t, got.Tokens.Festival, "fringe festival")
	assert.Contains(t, got.Tokens.Festival, "edinburgh")
	assert.Contains(t, got.Tokens.Season, "season two")
}

func TestEnrich_NonMemberGetsNoRosterTokens(t *testing.T) {
	rec := testRecord()
	rec.ID, rec.Slug = "rec-2", "someone-else"
	got := enrichOne(t, rec, nil)

	assert.Empty(t, got.Tokens.Program)
	assert.Empty(t, got.Tokens.Production)
	assert.Empty(t, got.Tokens.Festival)
	assert.Empty(t, got.Tokens.Season)
	assert.NotNil(t, got.Tokens.Program, "empty sets stay non-nil")
}

func TestEnrich_LanguageTokens(t *testing.T) {
	got := enrichOne(t, testRecord(), nil)
	assert.Contains(t, got.Tokens.Language, "spanish")
	assert.Contains(t, got.Tokens.Language, "english")

	// Fallback to tags when the language field is empty.
	rec := testRecord()
	rec.Languages = ""
	rec.Tags = "español"
	got = enrichOne(t, rec, nil)
	assert.Contains(t, got.Tokens.Language, "espanol")
	assert.Contains(t, got.Tokens.Language, "spanish")
}

func TestEnrich_HeadshotMatchedBySlug(t *testing.T) {
	candidates := []domain.MediaCandidate{
		{RecordID: "jane-doe", Kind: "headshot", FileID: "f1", UploadedAt: "2023-06-01T00:00:00Z"},
	}
	got := enrichOne(t, testRecord(), candidates)
	assert.Equal(t, "https://files.openstage.org/headshots/f1?v=1685577600", got.ResolvedAssetURL)
	assert.Equal(t, "1685577600", got.AssetCacheKey)
}

func TestEnrich_HeadshotMatchedByCanonicalSlug(t *testing.T) {
	rec := testRecord()
	rec.ID = "rec-9"
	rec.Slug = "jane-doe-old"
	candidates := []domain.MediaCandidate{
		{RecordID: "jane-doe", Kind: "headshot", FileID: "f2", UploadedAt: "2023-06-01T00:00:00Z"},
	}
	got := enrichOne(t, rec, candidates)
	assert.Contains(t, got.ResolvedAssetURL, "f2")
}

func TestEnrich_HeadshotPlaceholderWhenNoCandidates(t *testing.T) {
	got := enrichOne(t, testRecord(), nil)
	assert.Equal(t, media.PlaceholderURL, got.ResolvedAssetURL)
}

func TestEnrich_Idempotent(t *testing.T) {
	e := New(testEnrichMaps(), nil)
	recs := []domain.Record{testRecord()}
	first := e.Enrich(recs, nil)
	second := e.Enrich(recs, nil)
	assert.Equal(t, first, second)
}

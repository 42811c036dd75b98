package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/alias"
	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/errors"
)

func testCorpus() []*domain.EnrichedRecord {
	return []*domain.EnrichedRecord{
		{
			Record: domain.Record{
				ID: "rec-1", Slug: "jane-doe", Name: "Jane Doe",
				Location: "Quito", Roles: "Director",
			},
			CanonicalSlug: "jane-doe",
			Tokens: domain.TokenSets{
				Role:     []string{"director"},
				Location: []string{"quito"},
				Bio:      []string{"puppet", "opera", "ecuador"},
			},
		},
		{
			Record: domain.Record{
				ID: "rec-2", Slug: "sam-ray", Name: "Sam Ray",
				Location: "Berlin", Roles: "Stage Manager",
			},
			CanonicalSlug: "sam-ray",
			Tokens: domain.TokenSets{
				Role:     []string{"stage manager", "stage", "manager"},
				Location: []string{"berlin"},
			},
		},
		{
			Record: domain.Record{
				ID: "rec-3", Slug: "ana-cruz", Name: "Ana Cruz",
				Location: "Lisbon",
			},
			CanonicalSlug: "ana-cruz",
			Tokens: domain.TokenSets{
				Location: []string{"lisbon"},
				Bio:      []string{"lighting", "designer"},
			},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	idx := alias.Index{"la directora": {"jane-doe"}}
	eng, err := NewEngine(testCorpus(), idx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestNewEngine_RejectsUnknownAliasTarget(t *testing.T) {
	idx := alias.Index{"ghost": {"nobody-here"}}
	_, err := NewEngine(testCorpus(), idx, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCorpusMismatch))
}

func TestSearch_InvalidMaxSecondary(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Search(context.Background(), "jane", Options{MaxSecondary: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestSearch_EmptyQuery(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.Search(context.Background(), "   ", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Primary)
	assert.Empty(t, res.Secondary)

	opts := DefaultOptions()
	opts.ShowAllIfEmpty = true
	res, err = eng.Search(context.Background(), "", opts)
	require.NoError(t, err)
	assert.Empty(t, res.Primary)
	assert.Len(t, res.Secondary, 3)
}

func TestSearch_PrimaryOrderedByScore(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.Search(context.Background(), "director", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, res.Primary)
	assert.Equal(t, "rec-1", res.Primary[0].Record.ID)
	for i := 1; i < len(res.Primary); i++ {
		assert.GreaterOrEqual(t, res.Primary[i-1].Score, res.Primary[i].Score)
	}
}

func TestSearch_AliasResolvesToRecord(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.Search(context.Background(), "la directora", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, res.Primary)
	assert.Equal(t, "rec-1", res.Primary[0].Record.ID)
}

func TestSearch_TiersNeverOverlap(t *testing.T) {
	eng := newTestEngine(t)

	for _, query := range []string{"director", "stage manager", "berlin", "jan"} {
		res, err := eng.Search(context.Background(), query, DefaultOptions())
		require.NoError(t, err, query)

		primary := make(map[string]struct{})
		for _, p := range res.Primary {
			primary[p.Record.ID] = struct{}{}
		}
		for _, s := range res.Secondary {
			_, overlap := primary[s.ID]
			assert.False(t, overlap, "query %q: %s in both tiers", query, s.ID)
		}
	}
}

func TestSearch_SecondaryCapped(t *testing.T) {
	eng := newTestEngine(t)

	res, err := eng.Search(context.Background(), "designer", Options{MaxSecondary: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Secondary), 1)
}

func TestSearch_SuggestsNamesOnZeroResults(t *testing.T) {
	eng := newTestEngine(t)

	// "anacruz" is more than two edits from every indexed token, so both
	// tiers miss, but it is one edit from the full name "ana cruz".
	res, err := eng.Search(context.Background(), "anacruz", DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, res.Primary)
	assert.Empty(t, res.Secondary)
	assert.Contains(t, res.Suggestions, "Ana Cruz")
}

func TestSearch_FuzzyFallbackFindsTypo(t *testing.T) {
	eng := newTestEngine(t)

	// "lihgting" is two edits from "lighting"; tier 1 has no exact token
	// match, so the record should surface through the fallback.
	res, err := eng.Search(context.Background(), "lihgting", DefaultOptions())
	require.NoError(t, err)

	found := false
	for _, s := range res.Secondary {
		if s.ID == "rec-3" {
			found = true
		}
	}
	for _, p := range res.Primary {
		assert.NotEqual(t, "rec-3", p.Record.ID)
	}
	assert.True(t, found, "expected fuzzy fallback to surface rec-3")
}

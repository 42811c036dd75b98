package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/domain"
)

// setupTestIndex creates an in-memory fallback index for testing.
func setupTestIndex(t *testing.T, docs []*FallbackDocument) *FallbackIndex {
	t.Helper()

	index, err := NewFallbackIndex(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	require.NoError(t, index.IndexDocuments(docs))
	return index
}

func TestFallbackIndex_Empty(t *testing.T) {
	index := setupTestIndex(t, nil)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestFallbackIndex_IndexAndCount(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{
		{ID: "rec-1", Name: "Jane Doe"},
		{ID: "rec-2", Name: "Sam Ray"},
	})

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestFallbackIndex_ExactNameMatch(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{
		{ID: "rec-1", Name: "Jane Doe", Location: "quito ecuador"},
		{ID: "rec-2", Name: "Sam Ray", Location: "berlin"},
	})

	ids, err := index.Match(context.Background(), "jane", 10)
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	assert.Equal(t, "rec-1", ids[0])
}

func TestFallbackIndex_TypoTolerance(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{
		{ID: "rec-1", Name: "Jane Doe"},
		{ID: "rec-2", Name: "Sam Ray"},
	})

	// One transposition: "jnae" should still find Jane.
	ids, err := index.Match(context.Background(), "jnae", 10)
	require.NoError(t, err)
	assert.Contains(t, ids, "rec-1")
}

func TestFallbackIndex_YearTokensSearchable(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{
		{ID: "rec-1", Name: "Jane Doe", Season: "season two 2016 2017"},
		{ID: "rec-2", Name: "Sam Ray", Bio: "residency in prague"},
	})

	// Digit tokens must survive the analyzer at both index and query
	// time.
	ids, err := index.Match(context.Background(), "2016", 10)
	require.NoError(t, err)
	assert.Contains(t, ids, "rec-1")
	assert.NotContains(t, ids, "rec-2")
}

func TestFallbackIndex_NameOutranksBio(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{
		{ID: "bio-hit", Name: "Sam Ray", Bio: "worked with ecuador troupe"},
		{ID: "name-hit", Name: "Ecuador Molina"},
	})

	ids, err := index.Match(context.Background(), "ecuador", 10)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "name-hit", ids[0])
}

func TestFallbackIndex_LimitTruncates(t *testing.T) {
	docs := []*FallbackDocument{
		{ID: "rec-1", Role: "director"},
		{ID: "rec-2", Role: "director"},
		{ID: "rec-3", Role: "director"},
	}
	index := setupTestIndex(t, docs)

	ids, err := index.Match(context.Background(), "director", 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestFallbackIndex_EmptyQuery(t *testing.T) {
	index := setupTestIndex(t, []*FallbackDocument{{ID: "rec-1", Name: "Jane"}})

	ids, err := index.Match(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecordToDocument(t *testing.T) {
	rec := &domain.EnrichedRecord{
		Record: domain.Record{ID: "rec-1", Name: "Jane Doe"},
		Tokens: domain.TokenSets{
			Role:     []string{"actor", "director"},
			Location: []string{"quito ecuador", "quito", "ecuador"},
		},
	}

	doc := RecordToDocument(rec)
	assert.Equal(t, "rec-1", doc.ID)
	assert.Equal(t, "Jane Doe", doc.Name)
	assert.Equal(t, "actor director", doc.Role)
	assert.Equal(t, "quito ecuador quito ecuador", doc.Location)

	m := doc.ToMap()
	assert.Equal(t, "rec-1", m["id"])
	_, hasBio := m["bio"]
	assert.False(t, hasBio, "empty fields stay out of the map")
}

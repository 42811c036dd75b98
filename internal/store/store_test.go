package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/errors"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_FullSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, RecordsFile, `[
		{"id": "rec-1", "slug": "jane-doe", "name": "Jane Doe", "location": "Quito"}
	]`)
	writeFixture(t, dir, MediaFile, `[
		{"record_id": "rec-1", "kind": "headshot", "file_id": "file-9",
		 "uploaded_at": "2023-06-01T00:00:00Z", "is_current": true, "sort_index": "2"}
	]`)
	writeFixture(t, dir, ProgramsFile, `{
		"acting-2019": {"title": "Acting Intensive: Prague - 2019",
			"year": "2019", "artists": {"jane-doe": true}}
	}`)
	writeFixture(t, dir, SeasonsFile, `[
		{"slug": "season-one", "season_title": "Season One", "years": "2018-2019"}
	]`)
	writeFixture(t, dir, SlugAliasesFile, `[
		{"canonical": "jane-doe", "aliases": ["jane-d"]}
	]`)

	snap, err := New(dir, nil).Load()
	require.NoError(t, err)

	require.Len(t, snap.Records, 1)
	assert.Equal(t, "Jane Doe", snap.Records[0].Name)

	require.Len(t, snap.Media, 1)
	assert.Equal(t, "true", snap.Media[0].IsCurrent.String())
	assert.Equal(t, "2", snap.Media[0].SortIndex.String())

	assert.Contains(t, snap.Maps.Programs, "acting-2019")
	require.Len(t, snap.Maps.Seasons, 1)

	canonical, group, ok := snap.Maps.SlugAliases.Resolve("jane-d")
	require.True(t, ok)
	assert.Equal(t, "jane-doe", canonical)
	assert.Contains(t, group, "jane-doe")

	// Productions file was absent; that is not an error.
	assert.Empty(t, snap.Maps.Productions)
}

func TestLoad_MissingRecordsFails(t *testing.T) {
	_, err := New(t.TempDir(), nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLoad_MalformedOptionalFileFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, RecordsFile, `[]`)
	writeFixture(t, dir, MediaFile, `{not json`)

	_, err := New(dir, nil).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/rank"
	"github.com/openstage/directory-server/internal/store"
)

func writeRecords(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, store.RecordsFile), []byte(content), 0o644))
}

func TestNewCorpusService_BuildsEngine(t *testing.T) {
	dir := t.TempDir()
	writeRecords(t, dir, `[
		{"id": "rec-1", "slug": "jane-doe", "name": "Jane Doe", "location": "Quito"}
	]`)

	svc, err := NewCorpusService(store.New(dir, nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Shutdown() })

	res, err := svc.Engine().Search(context.Background(), "quito", rank.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Primary, 1)
	assert.Equal(t, "rec-1", res.Primary[0].Record.ID)
}

func TestNewCorpusService_MissingData(t *testing.T) {
	_, err := NewCorpusService(store.New(t.TempDir(), nil), nil)
	require.Error(t, err)
}

func TestReload_SwapsEngine(t *testing.T) {
	dir := t.TempDir()
	writeRecords(t, dir, `[{"id": "rec-1", "slug": "jane-doe", "name": "Jane Doe"}]`)

	svc, err := NewCorpusService(store.New(dir, nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Shutdown() })

	var swapped *rank.Engine
	svc.OnSwap(func(e *rank.Engine) { swapped = e })

	writeRecords(t, dir, `[
		{"id": "rec-1", "slug": "jane-doe", "name": "Jane Doe"},
		{"id": "rec-2", "slug": "sam-ray", "name": "Sam Ray"}
	]`)
	svc.Reload()

	require.NotNil(t, swapped)
	assert.Same(t, swapped, svc.Engine())
	assert.Len(t, svc.Engine().Corpus(), 2)
}

func TestReload_KeepsOldEngineOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeRecords(t, dir, `[{"id": "rec-1", "slug": "jane-doe", "name": "Jane Doe"}]`)

	svc, err := NewCorpusService(store.New(dir, nil), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Shutdown() })

	before := svc.Engine()
	writeRecords(t, dir, `{broken`)
	svc.Reload()

	assert.Same(t, before, svc.Engine())
}

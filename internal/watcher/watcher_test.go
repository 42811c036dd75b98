package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openstage/directory-server/internal/store"
)

func TestWatcher_CoalescesBurstIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	var reloads atomic.Int32
	fired := make(chan struct{}, 8)

	w, err := New(dir, func() {
		reloads.Add(1)
		fired <- struct{}{}
	}, Options{SettleDelay: 80 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	w.Start(ctx)

	// A burst of writes inside the settle window.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, store.RecordsFile), []byte(`[]`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after settle delay")
	}

	// Let any stragglers fire, then confirm the burst coalesced.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)

	w, err := New(dir, func() { fired <- struct{}{} },
		Options{SettleDelay: 40 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	w.Start(ctx)

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-fired:
		t.Fatal("reload fired for a non-fixture file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), func() {}, Options{})
	require.Error(t, err)
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}
	opts.setDefaults()
	assert.Equal(t, DefaultSettleDelay, opts.SettleDelay)
	assert.NotNil(t, opts.Logger)
}

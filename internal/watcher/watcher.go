// Package watcher watches the corpus data directory and signals a reload
// once a burst of fixture writes has settled. Editors and sync tools write
// JSON files in several events; the settle delay coalesces them into one
// reload instead of rebuilding the engine per write.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/openstage/directory-server/internal/errors"
	"github.com/openstage/directory-server/internal/store"
)

// DefaultSettleDelay is how long the directory must stay quiet before a
// reload fires.
const DefaultSettleDelay = 500 * time.Millisecond

// fixtureFiles are the only names that trigger a reload; everything else
// in the data directory is ignored.
var fixtureFiles = map[string]struct{}{
	store.RecordsFile:     {},
	store.MediaFile:       {},
	store.ProgramsFile:    {},
	store.ProductionsFile: {},
	store.SeasonsFile:     {},
	store.SlugAliasesFile: {},
}

// Options configures a Watcher.
type Options struct {
	// SettleDelay is the quiet period required before a reload. Zero means
	// DefaultSettleDelay.
	SettleDelay time.Duration
	Logger      *slog.Logger
}

func (o *Options) setDefaults() {
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Watcher monitors one data directory and calls the reload callback after
// fixture writes settle.
type Watcher struct {
	dir    string
	opts   Options
	reload func()

	fsw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// New builds a Watcher over dir. reload is called from the watcher's own
// goroutine after each settled burst of fixture changes.
func New(dir string, reload func(), opts Options) (*Watcher, error) {
	opts.setDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create fsnotify watcher")
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrap(err, errors.CodeNotFound, "watch data directory")
	}

	return &Watcher{
		dir:    dir,
		opts:   opts,
		reload: reload,
		fsw:    fsw,
		done:   make(chan struct{}),
	}, nil
}

// Start processes filesystem events until the context is cancelled or the
// watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.processEvents(ctx)
}

// Close stops event processing and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.opts.Logger.Warn("watch error", "dir", w.dir, "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if _, ok := fixtureFiles[filepath.Base(event.Name)]; !ok {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.opts.Logger.Debug("fixture changed", "file", filepath.Base(event.Name), "op", event.Op.String())
	w.startSettling()
}

// startSettling restarts the settle timer. Each further fixture event
// pushes the reload out until the directory stays quiet for the whole
// delay.
func (w *Watcher) startSettling() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.SettleDelay, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.opts.Logger.Info("corpus settled, reloading", "dir", w.dir)
		w.reload()
	})
}

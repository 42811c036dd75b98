package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/openstage/directory-server/internal/config"
	"github.com/openstage/directory-server/internal/logger"
	"github.com/openstage/directory-server/internal/service"
	"github.com/openstage/directory-server/internal/store"
	"github.com/openstage/directory-server/internal/watcher"
)

// ProvideStore provides the corpus fixture store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return store.New(cfg.Directory.DataPath, log.Logger), nil
}

// CorpusHandle wraps the corpus service with shutdown capability.
type CorpusHandle struct {
	*service.CorpusService
}

// Shutdown implements do.Shutdownable.
func (h *CorpusHandle) Shutdown() error {
	return h.CorpusService.Shutdown()
}

// ProvideCorpus provides the corpus service with its initial engine built.
func ProvideCorpus(i do.Injector) (*CorpusHandle, error) {
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc, err := service.NewCorpusService(st, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Corpus loaded", "records", len(svc.Engine().Corpus()))
	return &CorpusHandle{CorpusService: svc}, nil
}

// WatcherHandle wraps the corpus watcher with shutdown capability. Nil when
// watching is disabled by configuration.
type WatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Close()
}

// ProvideWatcher provides the data-directory watcher wired to corpus
// reload, started immediately.
func ProvideWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Directory.Watch {
		return &WatcherHandle{cancel: func() {}}, nil
	}

	log := do.MustInvoke[*logger.Logger](i)
	corpus := do.MustInvoke[*CorpusHandle](i)

	w, err := watcher.New(cfg.Directory.DataPath, corpus.Reload, watcher.Options{
		SettleDelay: cfg.Directory.WatchSettleDelay,
		Logger:      log.Logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	log.Info("Corpus watcher started", "dir", cfg.Directory.DataPath)

	return &WatcherHandle{Watcher: w, cancel: cancel}, nil
}

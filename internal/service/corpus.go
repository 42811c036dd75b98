// Package service composes the engine pipeline: load a corpus snapshot,
// enrich it, build the alias index, and stand up a ranking engine. It also
// owns the reload path that swaps a freshly built engine in for the old one.
package service

import (
	"log/slog"
	"sync"

	"github.com/openstage/directory-server/internal/alias"
	"github.com/openstage/directory-server/internal/enrich"
	"github.com/openstage/directory-server/internal/rank"
	"github.com/openstage/directory-server/internal/store"
)

// CorpusService owns the current ranking engine and rebuilds it from the
// store on demand. Engine() and Reload() are safe for concurrent use.
type CorpusService struct {
	store  *store.Store
	logger *slog.Logger

	mu     sync.RWMutex
	engine *rank.Engine
	onSwap []func(*rank.Engine)
}

// NewCorpusService loads the initial corpus and builds the first engine.
func NewCorpusService(st *store.Store, logger *slog.Logger) (*CorpusService, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &CorpusService{store: st, logger: logger}

	engine, err := s.buildEngine()
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// buildEngine runs the full pipeline over a fresh snapshot.
func (s *CorpusService) buildEngine() (*rank.Engine, error) {
	snap, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	enriched := enrich.New(snap.Maps, s.logger).Enrich(snap.Records, snap.Media)
	idx := alias.Build(snap.Maps)

	return rank.NewEngine(enriched, idx, s.logger)
}

// Engine returns the current engine.
func (s *CorpusService) Engine() *rank.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// OnSwap registers a callback invoked with each newly swapped-in engine.
// Register before the watcher starts; registration is not synchronized
// against concurrent reloads.
func (s *CorpusService) OnSwap(fn func(*rank.Engine)) {
	s.onSwap = append(s.onSwap, fn)
}

// Reload rebuilds the engine from the store and swaps it in. A failed
// rebuild keeps the old engine serving; a reload must never leave the
// service without a working corpus.
func (s *CorpusService) Reload() {
	engine, err := s.buildEngine()
	if err != nil {
		s.logger.Error("corpus reload failed, keeping previous engine", "error", err)
		return
	}

	s.mu.Lock()
	old := s.engine
	s.engine = engine
	s.mu.Unlock()

	for _, fn := range s.onSwap {
		fn(engine)
	}
	if old != nil {
		if err := old.Close(); err != nil {
			s.logger.Warn("closing replaced engine", "error", err)
		}
	}

	s.logger.Info("corpus reloaded", "records", len(engine.Corpus()))
}

// Shutdown closes the current engine.
func (s *CorpusService) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil
	}
	err := s.engine.Close()
	s.engine = nil
	return err
}

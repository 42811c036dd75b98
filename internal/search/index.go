package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// FallbackIndex wraps an in-memory Bleve index over the enriched corpus.
//
// The corpus is immutable per load, so the index is built once and only
// read afterwards. Thread safety: all public methods are safe for
// concurrent use; the mutex guards against reads during a rebuild.
type FallbackIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the fallback index.
type Options struct {
	Logger *slog.Logger // Logger for operations (uses stderr if nil)
}

// batchSize bounds memory pressure during initial indexing.
const batchSize = 500

// NewFallbackIndex creates an empty in-memory fallback index.
func NewFallbackIndex(opts Options) (*FallbackIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexMapping, err := buildIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("build index mapping: %w", err)
	}
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("create fallback index: %w", err)
	}

	return &FallbackIndex{index: index, logger: logger}, nil
}

// Close closes the index and releases resources.
func (f *FallbackIndex) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index.Close()
}

// IndexDocuments indexes the documents in batches.
func (f *FallbackIndex) IndexDocuments(docs []*FallbackDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))

		batch := f.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := f.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	f.logger.Debug("fallback index built", "documents", len(docs))
	return nil
}

// DocumentCount returns the total number of indexed documents.
func (f *FallbackIndex) DocumentCount() (uint64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.index.DocCount()
}

// Match runs the approximate query and returns matching record IDs in the
// fallback ranker's own score order, truncated to limit.
func (f *FallbackIndex) Match(ctx context.Context, query string, limit int) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if query == "" || limit <= 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildFallbackQuery(query), limit, 0, false)
	req.SortBy([]string{"-_score"})

	result, err := f.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute fallback search: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

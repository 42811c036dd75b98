package rank

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/openstage/directory-server/internal/alias"
	"github.com/openstage/directory-server/internal/domain"
	"github.com/openstage/directory-server/internal/errors"
	"github.com/openstage/directory-server/internal/normalize"
	"github.com/openstage/directory-server/internal/search"
)

// DefaultMaxSecondary bounds the tier-2 result list unless overridden.
const DefaultMaxSecondary = 50

// Options configures one search call.
type Options struct {
	// MaxSecondary caps the tier-2 fallback list. Must be positive.
	MaxSecondary int
	// ShowAllIfEmpty returns the whole corpus as secondary when the query
	// is empty, for browse-style consumers.
	ShowAllIfEmpty bool
}

// DefaultOptions returns the standard search options.
func DefaultOptions() Options {
	return Options{MaxSecondary: DefaultMaxSecondary}
}

// Result is the outcome of one query evaluation.
type Result struct {
	// Primary holds tier-1 hits, score descending, ties in corpus order.
	Primary []*domain.ScoredResult
	// Secondary holds tier-2 fallback hits in the fallback ranker's own
	// order, never overlapping Primary.
	Secondary []*domain.EnrichedRecord
	// Suggestions holds near-miss names when both tiers come up empty.
	Suggestions []string
	// NormalizedQuery is the tokenized form the engine evaluated.
	NormalizedQuery string
}

// Engine ranks an immutable enriched corpus against free-text queries.
// Build one per corpus load; all methods are safe for concurrent use once
// constructed.
type Engine struct {
	corpus   []*domain.EnrichedRecord
	indexed  []*indexedRecord
	byID     map[string]*domain.EnrichedRecord
	aliasIdx alias.Index
	fallback *search.FallbackIndex
	logger   *slog.Logger
}

// NewEngine validates the corpus/alias-index pairing, builds the fallback
// index, and precomputes per-record scoring structures. Construction is
// the only place this pipeline can fail; Search never errors on data.
func NewEngine(corpus []*domain.EnrichedRecord, aliasIdx alias.Index, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	known := make(map[string]struct{}, len(corpus)*3)
	byID := make(map[string]*domain.EnrichedRecord, len(corpus))
	for _, rec := range corpus {
		known[rec.ID] = struct{}{}
		known[rec.Slug] = struct{}{}
		known[rec.CanonicalSlug] = struct{}{}
		byID[rec.ID] = rec
	}
	if err := aliasIdx.Validate(known); err != nil {
		return nil, err
	}

	fallback, err := search.NewFallbackIndex(search.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	docs := make([]*search.FallbackDocument, 0, len(corpus))
	for _, rec := range corpus {
		docs = append(docs, search.RecordToDocument(rec))
	}
	if err := fallback.IndexDocuments(docs); err != nil {
		_ = fallback.Close()
		return nil, err
	}

	indexed := make([]*indexedRecord, 0, len(corpus))
	for _, rec := range corpus {
		indexed = append(indexed, indexRecord(rec))
	}

	logger.Info("ranking engine built", "records", len(corpus), "aliases", len(aliasIdx))

	return &Engine{
		corpus:   corpus,
		indexed:  indexed,
		byID:     byID,
		aliasIdx: aliasIdx,
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Close releases the fallback index.
func (e *Engine) Close() error {
	return e.fallback.Close()
}

// Corpus returns the engine's enriched corpus.
func (e *Engine) Corpus() []*domain.EnrichedRecord {
	return e.corpus
}

// Search evaluates a free-text query against the corpus.
//
// Tier 1 scores every record deterministically; tier 2 runs the
// approximate fallback over the rest. No record appears in both lists.
func (e *Engine) Search(ctx context.Context, rawQuery string, opts Options) (*Result, error) {
	if opts.MaxSecondary <= 0 {
		return nil, errors.Validation("max secondary must be positive, got %d", opts.MaxSecondary)
	}

	res := &Result{NormalizedQuery: normalize.Token(rawQuery)}

	if strings.TrimSpace(rawQuery) == "" {
		if opts.ShowAllIfEmpty {
			res.Secondary = append(res.Secondary, e.corpus...)
		}
		return res, nil
	}

	q := ParseQuery(rawQuery)

	// Tier 1: deterministic scoring, corpus order preserved among ties.
	inPrimary := make(map[string]struct{})
	for _, ir := range e.indexed {
		scored := ir.score(q, e.aliasIdx)
		if included(scored) {
			res.Primary = append(res.Primary, scored)
			inPrimary[scored.Record.ID] = struct{}{}
		}
	}
	sort.SliceStable(res.Primary, func(i, j int) bool {
		return res.Primary[i].Score > res.Primary[j].Score
	})

	// Tier 2: approximate fallback, excluding everything tier 1 already
	// surfaced. Over-fetch by the primary count so exclusion cannot starve
	// the secondary list.
	ids, err := e.fallback.Match(ctx, q.Normalized, opts.MaxSecondary+len(res.Primary))
	if err != nil {
		// The fallback is best-effort; a fallback failure must not take
		// down an otherwise valid tier-1 answer.
		e.logger.Warn("fallback match failed", "query", q.Normalized, "error", err)
		return res, nil
	}
	for _, id := range ids {
		if _, ok := inPrimary[id]; ok {
			continue
		}
		rec, ok := e.byID[id]
		if !ok {
			continue
		}
		res.Secondary = append(res.Secondary, rec)
		if len(res.Secondary) >= opts.MaxSecondary {
			break
		}
	}

	if len(res.Primary) == 0 && len(res.Secondary) == 0 {
		res.Suggestions = e.suggestNames(q.Normalized)
	}

	e.logger.Debug("search evaluated",
		"query", q.Normalized,
		"primary", len(res.Primary),
		"secondary", len(res.Secondary),
	)
	return res, nil
}

// suggestion thresholds for the zero-result "did you mean" list.
const (
	maxSuggestions       = 3
	suggestionSimilarity = 0.5
)

// suggestNames returns the closest record names by edit-distance
// similarity, for queries neither tier could answer.
func (e *Engine) suggestNames(normalized string) []string {
	if normalized == "" {
		return nil
	}

	type candidate struct {
		name string
		sim  float64
	}
	var candidates []candidate
	for _, ir := range e.indexed {
		if ir.nameNorm == "" {
			continue
		}
		sim := Similarity(normalized, ir.nameNorm)
		if sim >= suggestionSimilarity {
			candidates = append(candidates, candidate{name: ir.rec.Name, sim: sim})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	names := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		names = append(names, c.name)
		if len(names) == maxSuggestions {
			break
		}
	}
	return names
}

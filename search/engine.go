package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter"
	"golang.org/x/sync/errgroup"
)

// Engine is the multi-strategy search engine. Construct one explicitly
// with NewEngine and share it; there is no global instance.
//
// AddDocument and RemoveDocument are serialized with each other and commit
// fully (index write included) before returning, so a search issued
// afterwards from any goroutine observes the change. Searches run
// concurrently and never block each other.
type Engine struct {
	cfg      *Config
	logger   *log.Logger
	registry *documentRegistry
	index    *exactIndex
	fuzzy    *fuzzyMatcher
	expander *Expander
	thematic *thematicScorer

	cacheEnabled bool
	cache        otter.Cache[string, *SearchResults]
	// generation is bumped on every mutation and embedded in cache keys,
	// so a search that overlaps an add can only write entries under the
	// old generation; reads after the add never see them.
	generation atomic.Uint64

	mu sync.Mutex // serializes mutations (registry + index commit)
}

type engineOptions struct {
	synonyms map[string][]string
	themes   map[string][]string
	logger   *log.Logger
}

// Option configures optional engine collaborators.
type Option func(*engineOptions)

// WithSynonyms replaces the default synonym/alias table.
func WithSynonyms(table map[string][]string) Option {
	return func(o *engineOptions) { o.synonyms = table }
}

// WithThemes replaces the default theme ontology.
func WithThemes(themes map[string][]string) Option {
	return func(o *engineOptions) { o.themes = themes }
}

// WithLogger sets the logger for operational messages.
func WithLogger(l *log.Logger) Option {
	return func(o *engineOptions) { o.logger = l }
}

// NewEngine creates an engine with the given configuration. A nil cfg
// uses DefaultConfig.
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := &engineOptions{
		synonyms: DefaultSynonyms(),
		themes:   DefaultThemes(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	index, err := newExactIndex(cfg.Snippet.MaxLength)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		logger:   o.logger,
		registry: newDocumentRegistry(),
		index:    index,
		fuzzy:    newFuzzyMatcher(cfg),
		expander: NewExpander(o.synonyms),
		thematic: newThematicScorer(cfg, o.themes),
	}

	if cfg.Cache.Enabled {
		cache, err := otter.MustBuilder[string, *SearchResults](cfg.Cache.Capacity).Build()
		if err != nil {
			index.close()
			return nil, fmt.Errorf("failed to build query cache: %w", err)
		}
		e.cache = cache
		e.cacheEnabled = true
	}

	return e, nil
}

// AddDocument indexes one document. It fails with *IndexingError if the
// content is empty, the id is missing, or the id is already indexed;
// re-adding without an explicit remove is an error, not an overwrite, so
// caller bugs don't silently mask documents.
func (e *Engine) AddDocument(doc *SearchableDocument) error {
	if doc == nil {
		return &IndexingError{Reason: "nil document"}
	}
	if doc.ID == "" {
		return &IndexingError{Reason: "empty document id"}
	}
	if strings.TrimSpace(doc.Content) == "" {
		return &IndexingError{DocumentID: doc.ID, Reason: "empty content"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.registry.contains(doc.ID) {
		return &IndexingError{DocumentID: doc.ID, Reason: "document id already indexed"}
	}
	if err := e.index.add(doc); err != nil {
		return &IndexingError{DocumentID: doc.ID, Reason: err.Error()}
	}
	e.registry.add(doc)
	e.invalidateCache()

	e.logger.Printf("indexed document %s (%d total)", doc.ID, e.registry.size())
	return nil
}

// AddDocuments indexes a batch, skipping documents that fail rather than
// aborting the run. It returns the number added and the joined errors for
// the skipped documents, if any.
func (e *Engine) AddDocuments(docs []*SearchableDocument) (int, error) {
	added := 0
	var errs []error
	for _, doc := range docs {
		if err := e.AddDocument(doc); err != nil {
			e.logger.Printf("skipping document: %v", err)
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

// RemoveDocument removes a document from the index and registry. Updating
// a document is modeled as RemoveDocument followed by AddDocument.
func (e *Engine) RemoveDocument(id string) error {
	if id == "" {
		return &IndexingError{Reason: "empty document id"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.registry.contains(id) {
		return &IndexingError{DocumentID: id, Reason: "document not indexed"}
	}
	if err := e.index.remove(id); err != nil {
		return &IndexingError{DocumentID: id, Reason: err.Error()}
	}
	e.registry.remove(id)
	e.invalidateCache()

	e.logger.Printf("removed document %s (%d total)", id, e.registry.size())
	return nil
}

// Document returns the indexed document with the given id, or nil.
func (e *Engine) Document(id string) *SearchableDocument {
	return e.registry.get(id)
}

// DocumentCount returns the number of indexed documents.
func (e *Engine) DocumentCount() int {
	return e.registry.size()
}

// Search runs a query in the given mode and returns up to maxResults
// ranked results. The results slice may be served from the query cache
// and must not be modified by the caller.
//
// An empty or whitespace-only query fails with *InvalidQueryError; a
// non-positive maxResults or unknown mode fails with
// *InvalidArgumentError. An empty result set is the normal "no matches"
// signal, not an error. Cancel ctx to abandon a long-running search.
func (e *Engine) Search(ctx context.Context, query string, mode SearchType, maxResults int) (*SearchResults, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &InvalidQueryError{Query: query}
	}
	if maxResults <= 0 {
		return nil, &InvalidArgumentError{Name: "maxResults", Reason: fmt.Sprintf("must be > 0, got %d", maxResults)}
	}
	if !mode.valid() {
		return nil, &InvalidArgumentError{Name: "mode", Reason: fmt.Sprintf("unknown search type %d", int(mode))}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()

	// One snapshot per search: every scan strategy in this call sees the
	// same corpus even if documents land mid-flight. The bleve side reads
	// the live index, which only ever runs ahead of the snapshot.
	docs := e.registry.snapshot()

	// Unindexed state: every mode returns empty without error.
	if len(docs) == 0 {
		return &SearchResults{
			Query:      query,
			Results:    []SearchResult{},
			SearchType: mode,
			Elapsed:    time.Since(start),
		}, nil
	}

	cacheKey := strconv.FormatUint(e.generation.Load(), 10) + "|" + mode.String() + "|" + strconv.Itoa(maxResults) + "|" + query
	if e.cacheEnabled {
		if cached, ok := e.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	var lists [][]SearchResult
	var err error
	if mode == SearchTypeIntelligent {
		lists, err = e.searchAll(ctx, docs, query, maxResults)
	} else {
		lists, err = e.searchSingle(ctx, docs, query, mode, maxResults)
	}
	if err != nil {
		return nil, err
	}

	merged := mergeResults(lists, maxResults)
	res := &SearchResults{
		Query:        query,
		Results:      merged,
		TotalResults: len(merged),
		SearchType:   mode,
		Elapsed:      time.Since(start),
	}

	if e.cacheEnabled {
		e.cache.Set(cacheKey, res)
	}
	return res, nil
}

// searchSingle runs one strategy. A strategy failure (e.g. a malformed
// boolean query) degrades to an empty result set; only cancellation
// propagates.
func (e *Engine) searchSingle(ctx context.Context, docs []*SearchableDocument, query string, mode SearchType, limit int) ([][]SearchResult, error) {
	results, err := e.dispatch(ctx, mode, docs, query, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Printf("search: %v", &StrategyExecutionError{Strategy: mode, Err: err})
		return nil, nil
	}
	return [][]SearchResult{results}, nil
}

// searchAll fans out to all four strategies concurrently. Each strategy
// gets an even share of the result budget before merging so the noisiest
// strategy cannot crowd out precise matches; the post-merge truncation
// still enforces the overall cap. A failed strategy contributes zero
// results instead of failing the search.
func (e *Engine) searchAll(ctx context.Context, docs []*SearchableDocument, query string, maxResults int) ([][]SearchResult, error) {
	perStrategy := maxResults / intelligentStrategyCount
	if perStrategy < 1 {
		perStrategy = 1
	}

	strategies := []SearchType{SearchTypeExact, SearchTypeFuzzy, SearchTypeSemantic, SearchTypeThematic}
	lists := make([][]SearchResult, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		i, strategy := i, strategy
		g.Go(func() error {
			results, err := e.dispatch(gctx, strategy, docs, query, perStrategy)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.logger.Printf("search: %v", &StrategyExecutionError{Strategy: strategy, Err: err})
				return nil
			}
			lists[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (e *Engine) dispatch(ctx context.Context, strategy SearchType, docs []*SearchableDocument, query string, limit int) ([]SearchResult, error) {
	switch strategy {
	case SearchTypeExact:
		return e.index.searchQueryString(ctx, query, limit)
	case SearchTypeFuzzy:
		return e.fuzzy.search(ctx, docs, query, limit)
	case SearchTypeSemantic:
		return e.index.searchVariants(ctx, e.expander.Expand(query), limit)
	case SearchTypeThematic:
		return e.thematic.search(ctx, docs, query, limit)
	default:
		return nil, fmt.Errorf("unsupported strategy %s", strategy)
	}
}

func (e *Engine) invalidateCache() {
	e.generation.Add(1)
	if e.cacheEnabled {
		e.cache.Clear()
	}
}

// Close releases the index and cache.
func (e *Engine) Close() error {
	if e.cacheEnabled {
		e.cache.Close()
	}
	return e.index.close()
}

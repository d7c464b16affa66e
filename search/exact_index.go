package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Highlight markup emitted by bleve's "html" fragment formatter.
const (
	emOpen  = "<em>"
	emClose = "</em>"
)

// exactIndex maintains the bleve inverted index over the searchable
// fields of every document and answers ranked term/phrase queries.
//
// Reader consistency: bleve's in-memory index commits synchronously, and
// the engine holds its mutation lock across add + registry update, so a
// search issued after AddDocument returns is guaranteed to see the new
// document.
type exactIndex struct {
	index      bleve.Index
	snippetMax int
	mu         sync.RWMutex // protects index during updates
}

// newExactIndex creates an in-memory bleve index with per-field mappings.
func newExactIndex(snippetMax int) (*exactIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	return &exactIndex{index: index, snippetMax: snippetMax}, nil
}

// buildIndexMapping creates the index mapping for searchable documents.
// All queryable fields use the standard analyzer; content keeps term
// vectors so phrase queries and highlighting work.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	contentMapping := bleve.NewTextFieldMapping()
	contentMapping.Analyzer = "standard"
	contentMapping.Store = true
	contentMapping.Index = true
	contentMapping.IncludeTermVectors = true

	// Term vectors stay on for every queryable field so phrase queries
	// work regardless of field scoping.
	titleMapping := bleve.NewTextFieldMapping()
	titleMapping.Analyzer = "standard"
	titleMapping.Store = true
	titleMapping.Index = true
	titleMapping.IncludeTermVectors = true

	authorMapping := bleve.NewTextFieldMapping()
	authorMapping.Analyzer = "standard"
	authorMapping.Store = true
	authorMapping.Index = true
	authorMapping.IncludeTermVectors = true

	categoryMapping := bleve.NewTextFieldMapping()
	categoryMapping.Analyzer = "standard"
	categoryMapping.Store = true
	categoryMapping.Index = true
	categoryMapping.IncludeTermVectors = true

	// Stored for retrieval, never analyzed or searched.
	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = "keyword"
	idMapping.Store = true
	idMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("id", idMapping)
	docMapping.AddFieldMappingsAt("title", titleMapping)
	docMapping.AddFieldMappingsAt("author", authorMapping)
	docMapping.AddFieldMappingsAt("content", contentMapping)
	docMapping.AddFieldMappingsAt("category", categoryMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func docToFields(doc *SearchableDocument) map[string]interface{} {
	return map[string]interface{}{
		"id":       doc.ID,
		"title":    doc.Title,
		"author":   doc.Author,
		"content":  doc.Content,
		"category": doc.Category,
	}
}

// add indexes one document. The commit is synchronous; once add returns,
// subsequent searches observe the document.
func (x *exactIndex) add(doc *SearchableDocument) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.index.Index(doc.ID, docToFields(doc)); err != nil {
		return fmt.Errorf("failed to index document %s: %w", doc.ID, err)
	}
	return nil
}

// remove deletes a document's postings.
func (x *exactIndex) remove(id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.index.Delete(id); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

// searchQueryString answers an exact search using bleve query syntax
// (terms, phrases, field scoping, boolean operators). Parse failures
// surface as errors; the engine masks them at the strategy boundary.
func (x *exactIndex) searchQueryString(ctx context.Context, queryStr string, limit int) ([]SearchResult, error) {
	return x.run(ctx, bleve.NewQueryStringQuery(queryStr), limit, SearchTypeExact)
}

// searchVariants answers a semantic search: one disjunction of analyzed
// match queries, one per expanded query variant. Match queries have no
// syntax to mis-parse, so synonym expansion stays robust regardless of
// what characters the aliases contain.
func (x *exactIndex) searchVariants(ctx context.Context, variants []string, limit int) ([]SearchResult, error) {
	if len(variants) == 0 {
		return nil, nil
	}
	queries := make([]query.Query, 0, len(variants))
	for _, v := range variants {
		queries = append(queries, bleve.NewMatchQuery(v))
	}
	return x.run(ctx, bleve.NewDisjunctionQuery(queries...), limit, SearchTypeSemantic)
}

// run executes q and converts hits, max-normalizing bleve's TF-IDF scores
// into the engine's common 0-100 range.
func (x *exactIndex) run(ctx context.Context, q query.Query, limit int, tag SearchType) ([]SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	highlightStyle := "html"
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Style = &highlightStyle
	req.Highlight.Fields = []string{"content"}
	req.Fields = []string{"id", "title", "author", "content", "category"}

	res, err := x.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}

	maxScore := res.Hits[0].Score
	for _, hit := range res.Hits {
		if hit.Score > maxScore {
			maxScore = hit.Score
		}
	}

	results := make([]SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		title, _ := hit.Fields["title"].(string)
		author, _ := hit.Fields["author"].(string)
		category, _ := hit.Fields["category"].(string)
		content, _ := hit.Fields["content"].(string)

		snippet := firstFragment(hit.Fragments)
		if snippet == "" {
			snippet = content
		}

		score := 0.0
		if maxScore > 0 {
			score = hit.Score / maxScore * 100
		}

		results = append(results, SearchResult{
			DocumentID:    hit.ID,
			Title:         title,
			Author:        author,
			Category:      category,
			Snippet:       truncateHighlighted(snippet, x.snippetMax),
			Score:         score,
			MatchStrategy: tag,
		})
	}

	return results, nil
}

// truncateHighlighted bounds a highlighted fragment to max visible runes.
// The <em> markup is copied whole and does not count against the bound;
// a tag left open by the cut is closed so the snippet stays well-formed.
func truncateHighlighted(s string, max int) string {
	if max <= 0 {
		return ""
	}

	var b strings.Builder
	visible := 0
	open := false
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], emOpen) {
			b.WriteString(emOpen)
			open = true
			i += len(emOpen)
			continue
		}
		if strings.HasPrefix(s[i:], emClose) {
			b.WriteString(emClose)
			open = false
			i += len(emClose)
			continue
		}
		if visible == max {
			break
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		visible++
		i += size
	}
	if open {
		b.WriteString(emClose)
	}
	return b.String()
}

// firstFragment extracts the first highlighted snippet from bleve
// fragments, which arrive as map[field][]snippets.
func firstFragment(fragments map[string][]string) string {
	for _, snippets := range fragments {
		for _, s := range snippets {
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// close releases the underlying index.
func (x *exactIndex) close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.index != nil {
		return x.index.Close()
	}
	return nil
}

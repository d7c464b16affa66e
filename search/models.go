// Package search implements a multi-strategy document search engine.
//
// Four independent strategies run over one in-memory document set: an
// exact-match inverted index (bleve), an approximate string matcher for
// typos and alternate transliterations, a synonym-expansion strategy for
// proper names with many spellings, and a theme-ontology scorer for
// concept-level queries. Intelligent mode fans out to all four and merges
// the result lists into a single deduplicated ranking.
package search

import "time"

// SearchType selects which matching strategy (or combination) a search uses.
// It is also the per-result match tag, so the merge step's priority
// tie-break can be exhaustive over a closed set.
type SearchType int

const (
	// SearchTypeExact queries the inverted index with full query syntax.
	SearchTypeExact SearchType = iota
	// SearchTypeFuzzy matches approximate titles and content windows.
	SearchTypeFuzzy
	// SearchTypeSemantic expands the query through the synonym table
	// before querying the index.
	SearchTypeSemantic
	// SearchTypeThematic scores documents against the theme ontology.
	SearchTypeThematic
	// SearchTypeIntelligent runs all four strategies and merges.
	SearchTypeIntelligent
)

// String returns the lowercase name used in logs and result tags.
func (t SearchType) String() string {
	switch t {
	case SearchTypeExact:
		return "exact"
	case SearchTypeFuzzy:
		return "fuzzy"
	case SearchTypeSemantic:
		return "semantic"
	case SearchTypeThematic:
		return "thematic"
	case SearchTypeIntelligent:
		return "intelligent"
	default:
		return "unknown"
	}
}

func (t SearchType) valid() bool {
	return t >= SearchTypeExact && t <= SearchTypeIntelligent
}

// strategyPriority orders strategies by precision confidence for score
// tie-breaking: exact > thematic > semantic > fuzzy.
func strategyPriority(t SearchType) int {
	switch t {
	case SearchTypeExact:
		return 4
	case SearchTypeThematic:
		return 3
	case SearchTypeSemantic:
		return 2
	case SearchTypeFuzzy:
		return 1
	default:
		return 0
	}
}

// SearchableDocument is one indexable text with its metadata.
// Content is treated as immutable once indexed; an update is modeled as
// RemoveDocument followed by AddDocument.
type SearchableDocument struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Category string `json:"category"`
	// Path is an opaque reference to the caller's underlying storage.
	// The engine never reads it.
	Path string `json:"path,omitempty"`
}

// SearchResult is a single match. Score is normalized to a 0-100 range so
// results from different strategies are comparable; higher is better.
type SearchResult struct {
	DocumentID    string     `json:"document_id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Category      string     `json:"category"`
	Snippet       string     `json:"snippet"`
	Score         float64    `json:"score"`
	MatchStrategy SearchType `json:"match_strategy"`
}

// SearchResults is the response for one query.
type SearchResults struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
	SearchType   SearchType     `json:"search_type"`
	Elapsed      time.Duration  `json:"elapsed"`
}

// DefaultMaxResults is the result cap callers use when they have no
// specific limit in mind.
const DefaultMaxResults = 50

// intelligentStrategyCount is the number of strategies Intelligent mode
// fans out to; each gets maxResults/intelligentStrategyCount before the
// merge (integer division, remainder not redistributed).
const intelligentStrategyCount = 4

package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "radiant heart", "radiant heart", 100, 100},
		{"case and punctuation insensitive", "Radiant Heart!", "radiant heart", 100, 100},
		{"single typo", "radient heart", "radiant heart", 80, 100},
		{"reordered tokens", "heart radiant", "radiant heart", 90, 100},
		{"query inside longer text", "radient heart", "possess a pure kindly and radiant heart", 50, 100},
		{"unrelated", "completely unrelated term xyz", "The Hidden Words", 0, 49},
		{"empty", "", "radiant heart", 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := weightedRatio(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
		})
	}
}

func TestFuzzySearchMisspelledQuery(t *testing.T) {
	t.Parallel()

	m := newFuzzyMatcher(DefaultConfig())
	docs := []*SearchableDocument{hiddenWordsDoc()}

	results, err := m.search(context.Background(), docs, "radient heart", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "hw", r.DocumentID)
	assert.Equal(t, SearchTypeFuzzy, r.MatchStrategy)
	assert.GreaterOrEqual(t, r.Score, float64(DefaultConfig().contentThreshold()))
	assert.Contains(t, r.Snippet, "<em>heart</em>")
}

func TestFuzzySearchTitleThresholdGate(t *testing.T) {
	t.Parallel()

	m := newFuzzyMatcher(DefaultConfig())
	doc := hiddenWordsDoc()

	// Below the title threshold and below the content threshold: the
	// document must not appear at all.
	require.Less(t, weightedRatio("completely unrelated term xyz", doc.Title), m.titleThreshold)

	results, err := m.search(context.Background(), []*SearchableDocument{doc}, "completely unrelated term xyz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFuzzySearchTitleMatch(t *testing.T) {
	t.Parallel()

	m := newFuzzyMatcher(DefaultConfig())
	docs := []*SearchableDocument{hiddenWordsDoc()}

	results, err := m.search(context.Background(), docs, "the hiden words", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hw", results[0].DocumentID)
	assert.GreaterOrEqual(t, results[0].Score, m.titleThreshold)
}

func TestFuzzySearchDeterministicOrder(t *testing.T) {
	t.Parallel()

	m := newFuzzyMatcher(DefaultConfig())
	docs := []*SearchableDocument{
		{ID: "b", Title: "Gleanings", Content: "a radiant heart is a treasure"},
		{ID: "a", Title: "Gleanings", Content: "a radiant heart is a treasure"},
	}

	first, err := m.search(context.Background(), docs, "radiant heart", 10)
	require.NoError(t, err)
	second, err := m.search(context.Background(), docs, "radiant heart", 10)
	require.NoError(t, err)

	require.Equal(t, first, second)
	// Equal scores break ties on document id.
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].DocumentID)
	assert.Equal(t, "b", first[1].DocumentID)
}

func TestFuzzySearchCancellation(t *testing.T) {
	t.Parallel()

	m := newFuzzyMatcher(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.search(ctx, []*SearchableDocument{hiddenWordsDoc()}, "radiant heart", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFuzzySearchSnippetBound(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	m := newFuzzyMatcher(cfg)

	long := ""
	for i := 0; i < 100; i++ {
		long += "the ocean of divine wisdom surges within radiant hearts "
	}
	docs := []*SearchableDocument{{ID: "long", Title: "Long Text", Content: long}}

	results, err := m.search(context.Background(), docs, "radiant hearts", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.LessOrEqual(t, len([]rune(r.Snippet)), cfg.Snippet.MaxLength)
	}
}

func hiddenWordsDoc() *SearchableDocument {
	return &SearchableDocument{
		ID:       "hw",
		Title:    "The Hidden Words",
		Author:   "Bahá'u'lláh",
		Category: "Central Figures",
		Content:  "O Son of Spirit! My first counsel is this: Possess a pure, kindly and radiant heart.",
	}
}

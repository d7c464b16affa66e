package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeResultsDeduplicatesByDocument(t *testing.T) {
	t.Parallel()

	lists := [][]SearchResult{
		{{DocumentID: "a", Score: 80, MatchStrategy: SearchTypeExact}},
		{{DocumentID: "a", Score: 95, MatchStrategy: SearchTypeFuzzy}},
		{{DocumentID: "b", Score: 60, MatchStrategy: SearchTypeSemantic}},
	}

	merged := mergeResults(lists, 10)
	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].DocumentID)
	assert.Equal(t, 95.0, merged[0].Score, "highest score wins the duplicate")
	assert.Equal(t, SearchTypeFuzzy, merged[0].MatchStrategy)
}

func TestMergeResultsTieBreaksByStrategyPriority(t *testing.T) {
	t.Parallel()

	lists := [][]SearchResult{
		{{DocumentID: "a", Score: 80, MatchStrategy: SearchTypeFuzzy}},
		{{DocumentID: "a", Score: 80, MatchStrategy: SearchTypeExact}},
		{{DocumentID: "a", Score: 80, MatchStrategy: SearchTypeThematic}},
	}

	merged := mergeResults(lists, 10)
	require.Len(t, merged, 1)
	assert.Equal(t, SearchTypeExact, merged[0].MatchStrategy,
		"exact > thematic > semantic > fuzzy on equal scores")
}

func TestMergeResultsOrdering(t *testing.T) {
	t.Parallel()

	lists := [][]SearchResult{
		{
			{DocumentID: "low", Score: 10, MatchStrategy: SearchTypeExact},
			{DocumentID: "high", Score: 90, MatchStrategy: SearchTypeExact},
		},
		{
			{DocumentID: "mid", Score: 50, MatchStrategy: SearchTypeFuzzy},
		},
	}

	merged := mergeResults(lists, 10)
	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.GreaterOrEqual(t, merged[i-1].Score, merged[i].Score)
	}
}

func TestMergeResultsDeterministicOnFullTies(t *testing.T) {
	t.Parallel()

	lists := [][]SearchResult{
		{
			{DocumentID: "b", Score: 50, MatchStrategy: SearchTypeFuzzy},
			{DocumentID: "a", Score: 50, MatchStrategy: SearchTypeFuzzy},
			{DocumentID: "c", Score: 50, MatchStrategy: SearchTypeFuzzy},
		},
	}

	merged := mergeResults(lists, 10)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].DocumentID)
	assert.Equal(t, "b", merged[1].DocumentID)
	assert.Equal(t, "c", merged[2].DocumentID)
}

func TestMergeResultsTruncates(t *testing.T) {
	t.Parallel()

	var list []SearchResult
	for i := 0; i < 20; i++ {
		list = append(list, SearchResult{
			DocumentID:    string(rune('a' + i)),
			Score:         float64(i),
			MatchStrategy: SearchTypeExact,
		})
	}

	merged := mergeResults([][]SearchResult{list}, 5)
	assert.Len(t, merged, 5)
	assert.Equal(t, 19.0, merged[0].Score)
}

func TestMergeResultsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mergeResults(nil, 10))
	assert.Empty(t, mergeResults([][]SearchResult{nil, {}}, 10))
}

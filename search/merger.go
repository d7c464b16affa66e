package search

import "sort"

// mergeResults combines per-strategy result lists into one ranked,
// deduplicated list: concatenate, keep the best entry per document, sort
// by score, truncate.
//
// Duplicate resolution keeps the entry with the highest score; exact score
// ties fall back to strategy priority (exact > thematic > semantic >
// fuzzy, reflecting precision confidence). The final sort breaks score
// ties the same way, then by document id, so repeated queries over a
// fixed index always return the same ordering.
func mergeResults(lists [][]SearchResult, maxResults int) []SearchResult {
	byDoc := make(map[string]SearchResult)
	var order []string

	for _, list := range lists {
		for _, r := range list {
			existing, ok := byDoc[r.DocumentID]
			if !ok {
				byDoc[r.DocumentID] = r
				order = append(order, r.DocumentID)
				continue
			}
			if betterResult(r, existing) {
				byDoc[r.DocumentID] = r
			}
		}
	}

	merged := make([]SearchResult, 0, len(order))
	for _, id := range order {
		merged = append(merged, byDoc[id])
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		pa, pb := strategyPriority(a.MatchStrategy), strategyPriority(b.MatchStrategy)
		if pa != pb {
			return pa > pb
		}
		return a.DocumentID < b.DocumentID
	})

	if maxResults >= 0 && len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}

func betterResult(a, b SearchResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return strategyPriority(a.MatchStrategy) > strategyPriority(b.MatchStrategy)
}

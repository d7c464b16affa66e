package search

import (
	"context"
	"sort"
	"strings"
)

// thematicScorer matches queries against the theme ontology and scores
// documents by theme term density. A query that names no known theme
// contributes nothing; that opt-out is intentional, thematic search only
// speaks up for concept-level queries.
type thematicScorer struct {
	themes          map[string][]string // canonical (lowercase) -> synonyms
	names           []string            // sorted canonicals, for deterministic iteration
	canonicalWeight int
	synonymWeight   int
	multiplier      float64
	snippetMax      int
}

func newThematicScorer(cfg *Config, themes map[string][]string) *thematicScorer {
	s := &thematicScorer{
		themes:          make(map[string][]string, len(themes)),
		canonicalWeight: cfg.Thematic.CanonicalWeight,
		synonymWeight:   cfg.Thematic.SynonymWeight,
		multiplier:      cfg.Thematic.ScoreMultiplier,
		snippetMax:      cfg.Snippet.MaxLength,
	}
	for name, syns := range themes {
		ln := strings.ToLower(name)
		lsyns := make([]string, 0, len(syns))
		for _, syn := range syns {
			lsyns = append(lsyns, strings.ToLower(syn))
		}
		s.themes[ln] = lsyns
		s.names = append(s.names, ln)
	}
	sort.Strings(s.names)
	return s
}

// matchThemes returns every theme whose canonical name or synonym occurs
// as a substring of the lowercased query.
func (s *thematicScorer) matchThemes(query string) []string {
	q := strings.ToLower(query)
	var matched []string
	for _, name := range s.names {
		if strings.Contains(q, name) {
			matched = append(matched, name)
			continue
		}
		for _, syn := range s.themes[name] {
			if strings.Contains(q, syn) {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

// search scores docs against the themes implied by the query. A document's
// raw score is the average nonzero per-theme score scaled by the
// multiplier, max-normalized across the result set; documents matching no
// theme terms are excluded.
func (s *thematicScorer) search(ctx context.Context, docs []*SearchableDocument, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}
	matched := s.matchThemes(query)
	if len(matched) == 0 {
		return nil, nil
	}

	var results []SearchResult
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		content := strings.ToLower(doc.Content)

		total := 0
		themesHit := 0
		var matchedTerms []string
		for _, name := range matched {
			score := strings.Count(content, name) * s.canonicalWeight
			if strings.Contains(content, name) {
				matchedTerms = append(matchedTerms, name)
			}
			for _, syn := range s.themes[name] {
				c := strings.Count(content, syn)
				if c > 0 {
					score += c * s.synonymWeight
					matchedTerms = append(matchedTerms, syn)
				}
			}
			if score > 0 {
				total += score
				themesHit++
			}
		}
		if themesHit == 0 {
			continue
		}

		score := float64(total) / float64(themesHit) * s.multiplier

		results = append(results, SearchResult{
			DocumentID:    doc.ID,
			Title:         doc.Title,
			Author:        doc.Author,
			Category:      doc.Category,
			Snippet:       s.snippet(doc.Content, matchedTerms),
			Score:         score,
			MatchStrategy: SearchTypeThematic,
		})
	}

	if len(results) == 0 {
		return nil, nil
	}

	// Raw theme-density scores are unbounded. Max-normalize them into the
	// merge step's common 0-100 range, which keeps the density ordering
	// intact; a hard cap would flatten dense documents into ties.
	maxScore := results[0].Score
	for _, r := range results[1:] {
		if r.Score > maxScore {
			maxScore = r.Score
		}
	}
	for i := range results {
		results[i].Score = results[i].Score / maxScore * 100
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// snippet returns the first sentence containing any matched theme term,
// falling back to the head of the document.
func (s *thematicScorer) snippet(content string, terms []string) string {
	for _, sentence := range SplitSentences(content) {
		ls := strings.ToLower(sentence)
		for _, term := range terms {
			if strings.Contains(ls, term) {
				return truncateSnippet(sentence, s.snippetMax)
			}
		}
	}
	return truncateSnippet(content, s.snippetMax)
}

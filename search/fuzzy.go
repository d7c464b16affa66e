package search

import (
	"context"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// fuzzyMatcher finds near-matches the exact index misses: typos and
// alternate transliterations. Titles are compared whole; content is
// scanned with a sliding token window sized to the query plus padding.
//
// The scan is O(documents x content length / window stride) with an edit
// distance computed per window. That is fine for a corpus of tens of
// documents but does not scale to large corpora; a bigger corpus needs an
// approximate-matching index (e.g. n-gram) in front of this.
type fuzzyMatcher struct {
	titleThreshold   float64 // 0-100
	contentThreshold float64 // 0-100, lower bar than titles
	windowPadding    int
	snippetMax       int
}

// ctxCheckStride bounds how many windows are scored between cancellation
// checks.
const ctxCheckStride = 64

func newFuzzyMatcher(cfg *Config) *fuzzyMatcher {
	return &fuzzyMatcher{
		titleThreshold:   float64(cfg.Fuzzy.TitleThreshold),
		contentThreshold: float64(cfg.contentThreshold()),
		windowPadding:    cfg.Fuzzy.WindowPadding,
		snippetMax:       cfg.Snippet.MaxLength,
	}
}

// search scans docs for approximate title and content matches, keeping the
// best-scoring match per document.
func (m *fuzzyMatcher) search(ctx context.Context, docs []*SearchableDocument, rawQuery string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	qTokens := Normalize(rawQuery)
	if len(qTokens) == 0 {
		return nil, nil
	}
	windowLen := len(qTokens) + m.windowPadding

	var results []SearchResult
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		best := 0.0
		snippet := ""

		if ratio := weightedRatio(rawQuery, doc.Title); ratio >= m.titleThreshold {
			best = ratio
			snippet = truncateSnippet(doc.Content, m.snippetMax)
		}

		winRatio, winSnippet, err := m.bestWindow(ctx, doc.Content, rawQuery, qTokens, windowLen)
		if err != nil {
			return nil, err
		}
		if winRatio >= m.contentThreshold && winRatio > best {
			best = winRatio
			snippet = winSnippet
		}

		if best > 0 {
			results = append(results, SearchResult{
				DocumentID:    doc.ID,
				Title:         doc.Title,
				Author:        doc.Author,
				Category:      doc.Category,
				Snippet:       snippet,
				Score:         best,
				MatchStrategy: SearchTypeFuzzy,
			})
		}
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

// bestWindow slides a windowLen-token window across content and returns
// the best similarity ratio against the query together with the
// highlighted window text.
func (m *fuzzyMatcher) bestWindow(ctx context.Context, content, rawQuery string, qTokens []string, windowLen int) (float64, string, error) {
	tokens := Normalize(content)
	if len(tokens) == 0 {
		return 0, "", nil
	}
	if windowLen > len(tokens) {
		windowLen = len(tokens)
	}

	bestRatio := 0.0
	bestStart := 0
	for i := 0; i+windowLen <= len(tokens); i++ {
		if i%ctxCheckStride == 0 {
			select {
			case <-ctx.Done():
				return 0, "", ctx.Err()
			default:
			}
		}
		window := strings.Join(tokens[i:i+windowLen], " ")
		if ratio := weightedRatio(rawQuery, window); ratio > bestRatio {
			bestRatio = ratio
			bestStart = i
		}
	}

	snippet := highlightTokens(tokens[bestStart:bestStart+windowLen], qTokens)
	return bestRatio, truncateSnippet(snippet, m.snippetMax), nil
}

// highlightTokens joins window tokens, wrapping those that match a query
// token in <em> tags (same highlight style the index produces).
func highlightTokens(window, qTokens []string) string {
	qset := make(map[string]struct{}, len(qTokens))
	for _, t := range qTokens {
		qset[t] = struct{}{}
	}
	out := make([]string, len(window))
	for i, t := range window {
		if _, ok := qset[t]; ok {
			out[i] = "<em>" + t + "</em>"
		} else {
			out[i] = t
		}
	}
	return strings.Join(out, " ")
}

// weightedRatio scores string similarity on a 0-100 scale, combining
// whole-string, token-set, and best-alignment ratios so that both short
// typo'd queries and queries buried in longer windows score sensibly.
func weightedRatio(a, b string) float64 {
	na := strings.Join(Normalize(a), " ")
	nb := strings.Join(Normalize(b), " ")
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}

	whole := similarity(na, nb)
	tokenSet := tokenSetRatio(na, nb)
	partial := partialRatio(na, nb)

	best := whole
	if s := 0.95 * tokenSet; s > best {
		best = s
	}
	if s := 0.9 * partial; s > best {
		best = s
	}
	return 100 * best
}

// similarity is normalized Levenshtein similarity in [0,1].
func similarity(a, b string) float64 {
	s, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(s)
}

// tokenSetRatio compares the sorted token intersection against each
// side's remainder, which makes word order and duplication irrelevant.
func tokenSetRatio(a, b string) float64 {
	aTokens := strings.Fields(a)
	bTokens := strings.Fields(b)

	aSet := make(map[string]struct{}, len(aTokens))
	for _, t := range aTokens {
		aSet[t] = struct{}{}
	}
	bSet := make(map[string]struct{}, len(bTokens))
	for _, t := range bTokens {
		bSet[t] = struct{}{}
	}

	var common, aOnly, bOnly []string
	for t := range aSet {
		if _, ok := bSet[t]; ok {
			common = append(common, t)
		} else {
			aOnly = append(aOnly, t)
		}
	}
	for t := range bSet {
		if _, ok := aSet[t]; !ok {
			bOnly = append(bOnly, t)
		}
	}
	sort.Strings(common)
	sort.Strings(aOnly)
	sort.Strings(bOnly)

	t0 := strings.Join(common, " ")
	t1 := strings.TrimSpace(t0 + " " + strings.Join(aOnly, " "))
	t2 := strings.TrimSpace(t0 + " " + strings.Join(bOnly, " "))

	best := similarity(t1, t2)
	if t0 != "" {
		if s := similarity(t0, t1); s > best {
			best = s
		}
		if s := similarity(t0, t2); s > best {
			best = s
		}
	}
	return best
}

// partialRatio aligns the shorter string against every same-length token
// span of the longer one and keeps the best similarity.
func partialRatio(a, b string) float64 {
	aTokens := strings.Fields(a)
	bTokens := strings.Fields(b)

	shorter, longer := aTokens, bTokens
	if len(bTokens) < len(aTokens) {
		shorter, longer = bTokens, aTokens
	}
	if len(shorter) == 0 {
		return 0
	}

	needle := strings.Join(shorter, " ")
	k := len(shorter)
	best := 0.0
	for i := 0; i+k <= len(longer); i++ {
		if s := similarity(needle, strings.Join(longer[i:i+k], " ")); s > best {
			best = s
		}
	}
	return best
}

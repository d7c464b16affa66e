package search

import (
	"sort"
	"strings"
)

// Expander rewrites a query into the set {query} + expansions using the
// synonym/alias table. Lookup is bidirectional: a query containing a
// canonical term picks up all its aliases, and a query containing an alias
// picks up the canonical term and its sibling aliases. Matching is
// substring-based and case-insensitive. Pure function of the table; the
// expanded set feeds the semantic strategy only.
type Expander struct {
	table map[string][]string // canonical (lowercase) -> aliases
	keys  []string            // sorted canonicals, for deterministic output
}

// NewExpander builds an expander over the given canonical->aliases table.
// Keys and aliases are lowercased; a nil table yields an expander that
// returns queries unchanged.
func NewExpander(table map[string][]string) *Expander {
	e := &Expander{table: make(map[string][]string, len(table))}
	for canonical, aliases := range table {
		lc := strings.ToLower(canonical)
		las := make([]string, 0, len(aliases))
		for _, a := range aliases {
			las = append(las, strings.ToLower(a))
		}
		e.table[lc] = las
		e.keys = append(e.keys, lc)
	}
	sort.Strings(e.keys)
	return e
}

// Expand returns the query followed by every expansion the table yields
// for it, deduplicated, in deterministic order.
func (e *Expander) Expand(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := map[string]struct{}{q: {}}
	expanded := []string{q}

	appendTerm := func(term string) {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			expanded = append(expanded, term)
		}
	}

	for _, canonical := range e.keys {
		aliases := e.table[canonical]

		if strings.Contains(q, canonical) {
			for _, a := range aliases {
				appendTerm(a)
			}
			continue
		}

		for _, a := range aliases {
			if strings.Contains(q, a) {
				appendTerm(canonical)
				for _, sibling := range aliases {
					if sibling != a {
						appendTerm(sibling)
					}
				}
				break
			}
		}
	}

	return expanded
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpanderCanonicalPicksUpAliases(t *testing.T) {
	t.Parallel()

	e := NewExpander(DefaultSynonyms())
	got := e.Expand("prayers of Bahá'u'lláh")

	assert.Equal(t, "prayers of bahá'u'lláh", got[0], "original query always comes first")
	assert.Contains(t, got, "bahaullah")
	assert.Contains(t, got, "blessed beauty")
}

func TestExpanderAliasPicksUpCanonicalAndSiblings(t *testing.T) {
	t.Parallel()

	e := NewExpander(DefaultSynonyms())
	got := e.Expand("bahaullah")

	assert.Contains(t, got, "bahá'u'lláh")
	assert.Contains(t, got, "blessed beauty")
	// The matched alias itself is already the query, never duplicated.
	count := 0
	for _, term := range got {
		if term == "bahaullah" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExpanderNoMatchReturnsQueryOnly(t *testing.T) {
	t.Parallel()

	e := NewExpander(DefaultSynonyms())
	assert.Equal(t, []string{"radiant heart"}, e.Expand("radiant heart"))
}

func TestExpanderCaseInsensitive(t *testing.T) {
	t.Parallel()

	e := NewExpander(map[string][]string{"Aqdas": {"Most Holy Book"}})
	got := e.Expand("THE AQDAS")
	assert.Equal(t, []string{"the aqdas", "most holy book"}, got)
}

func TestExpanderDeterministic(t *testing.T) {
	t.Parallel()

	e := NewExpander(DefaultSynonyms())
	first := e.Expand("bahaullah and the báb")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, e.Expand("bahaullah and the báb"))
	}
}

func TestExpanderEmptyTable(t *testing.T) {
	t.Parallel()

	e := NewExpander(nil)
	assert.Equal(t, []string{"anything"}, e.Expand("anything"))
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "O Son of Spirit!",
			want:  []string{"o", "son", "of", "spirit"},
		},
		{
			name:  "diacritics preserved",
			input: "Bahá'u'lláh revealed the Kitáb-i-Aqdas",
			want:  []string{"bahá'u'lláh", "revealed", "the", "kitáb", "i", "aqdas"},
		},
		{
			name:  "punctuation split",
			input: "pure, kindly and radiant heart.",
			want:  []string{"pure", "kindly", "and", "radiant", "heart"},
		},
		{
			name:  "empty",
			input: "   ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeStableAcrossUnicodeForms(t *testing.T) {
	t.Parallel()

	// The same visible string in decomposed form must tokenize
	// identically to its composed form.
	composed := "Bahá'u'lláh"
	decomposed := norm.NFD.String(composed)
	require.NotEqual(t, composed, decomposed)

	assert.Equal(t, Normalize(composed), Normalize(decomposed))
	assert.Equal(t, Normalize(composed), Normalize(composed))
}

func TestWindow(t *testing.T) {
	t.Parallel()

	tokens := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name   string
		center int
		radius int
		want   []string
	}{
		{"middle", 2, 1, []string{"b", "c", "d"}},
		{"clamped left", 0, 2, []string{"a", "b", "c"}},
		{"clamped right", 4, 2, []string{"c", "d", "e"}},
		{"center out of range", 10, 1, []string{"d", "e"}},
		{"radius covers all", 2, 10, tokens},
		{"zero radius", 3, 0, []string{"d"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Window(tokens, tt.center, tt.radius))
		})
	}

	assert.Nil(t, Window(nil, 0, 1))
	assert.Nil(t, Window(tokens, 1, -1))
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	got := SplitSentences("Unity is strength. Is it not? Indeed!  ")
	assert.Equal(t, []string{"Unity is strength", "Is it not", "Indeed"}, got)

	assert.Empty(t, SplitSentences(""))
	assert.Equal(t, []string{"no terminator"}, SplitSentences("no terminator"))
}

func TestTruncateSnippet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncateSnippet("abc", 10))
	assert.Equal(t, "ab", truncateSnippet("abcd", 2))
	assert.Equal(t, "", truncateSnippet("abc", 0))

	// Multi-byte runes are never split.
	s := "Bahá'u'lláh"
	got := truncateSnippet(s, 4)
	assert.Equal(t, "Bahá", got)
}

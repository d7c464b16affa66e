package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// The corpus is heavy with diacritic-bearing transliterations
// ("Bahá'u'lláh", "Kitáb-i-Íqán"). Normalization must be stable — the same
// input always yields the same token form — but never strips diacritics;
// diacritic-insensitive matching goes through the synonym table instead.

// Normalize lowercases s and splits it into tokens. Input is NFC-composed
// first so that visually identical strings with different code-point
// sequences tokenize identically. Apostrophes inside words are kept, since
// they are significant in the transliteration scheme.
func Normalize(s string) []string {
	s = strings.ToLower(norm.NFC.String(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
}

// Window returns the contiguous token slice of radius tokens on either
// side of center, clamped to the bounds of tokens.
func Window(tokens []string, center, radius int) []string {
	if len(tokens) == 0 || radius < 0 {
		return nil
	}
	if center < 0 {
		center = 0
	}
	if center >= len(tokens) {
		center = len(tokens) - 1
	}
	lo := center - radius
	if lo < 0 {
		lo = 0
	}
	hi := center + radius + 1
	if hi > len(tokens) {
		hi = len(tokens)
	}
	return tokens[lo:hi]
}

// SplitSentences splits s on sentence-ending punctuation (., !, ?). The
// split is naive on purpose; it only feeds snippet selection, where an
// occasional mid-abbreviation split is harmless.
func SplitSentences(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// truncateSnippet bounds a snippet to max runes without splitting a
// multi-byte character.
func truncateSnippet(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

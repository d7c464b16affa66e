package search

// DefaultSynonyms maps canonical domain terms to their alternate spellings
// and transliterations. The table is read-only at runtime and seeded at
// engine construction; callers with their own vocabulary replace it via
// WithSynonyms.
//
// Diacritic-insensitive matching happens here rather than in the
// normalizer: "bahaullah" finds "Bahá'u'lláh" because the table says so,
// not because tokenization strips accents.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"bahá'u'lláh": {
			"bahaullah", "baha'u'llah", "bahá'u'llah", "blessed beauty", "blessed perfection",
		},
		"'abdu'l-bahá": {
			"abdul-baha", "abdu'l-baha", "abdul baha", "the master",
		},
		"báb": {
			"bab", "the báb", "primal point",
		},
		"shoghi effendi": {
			"the guardian", "guardian of the cause",
		},
		"bahá'í": {
			"bahai", "baha'i",
		},
		"kitáb-i-aqdas": {
			"kitab-i-aqdas", "aqdas", "most holy book",
		},
		"kitáb-i-íqán": {
			"kitab-i-iqan", "iqan", "book of certitude",
		},
		"hidden words": {
			"kalimát-i-maknúnih", "kalimat-i-maknunih",
		},
		"prayer": {
			"supplication", "devotions", "obligatory prayer",
		},
	}
}

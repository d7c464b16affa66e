package search

// DefaultThemes is the curated theme ontology: canonical theme name to
// synonym terms. Read-only at runtime; editing it is a data change, not an
// engine operation. Callers replace it via WithThemes.
func DefaultThemes() map[string][]string {
	return map[string][]string{
		"unity":      {"oneness", "harmony", "concord", "togetherness"},
		"prayer":     {"devotion", "supplication", "meditation", "worship"},
		"justice":    {"fairness", "equity", "righteousness"},
		"love":       {"affection", "compassion", "kindness", "charity"},
		"peace":      {"tranquility", "serenity", "calm"},
		"knowledge":  {"wisdom", "learning", "understanding", "education"},
		"detachment": {"renunciation", "severance", "contentment"},
		"service":    {"servitude", "helping", "assistance"},
		"faith":      {"belief", "trust", "certitude", "assurance"},
		"humanity":   {"mankind", "humankind", "human race"},
	}
}

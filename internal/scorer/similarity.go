package scorer

// Similarity is the Jaccard index of the keyword sets of two texts.
func Similarity(a, b string) float64 {
	return KeywordSimilarity(ExtractKeywords(a), ExtractKeywords(b))
}

// KeywordSimilarity compares already extracted keyword sets. Counts are ignored.
func KeywordSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

package match

// MinSimilarity is the lowest normalized similarity Closest accepts.
const MinSimilarity = 0.5

// Closest returns the candidate most similar to name, or false when none
// reaches MinSimilarity. Ties go to the earlier candidate. A candidate
// equal to name itself is never suggested.
func Closest(name string, candidates []string) (string, bool) {
	norm := Normalize(name)

	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, Normalize(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}

// Hint formats a " (did you mean X?)" suffix for name, or returns "" when
// nothing is close enough.
func Hint(name string, candidates []string) string {
	if best, ok := Closest(name, candidates); ok {
		return ` (did you mean "` + best + `"?)`
	}

	return ""
}

package patterns

import "github.com/agnivade/levenshtein"

// DefaultFuzzyCutoff is the minimum similarity ratio BestMatch accepts.
const DefaultFuzzyCutoff = 0.85

// BestMatch returns the candidate most similar to text, by normalized
// Levenshtein similarity, when that similarity meets the cutoff. Candidates
// are checked in order and earlier candidates win ties. A cutoff <= 0
// falls back to DefaultFuzzyCutoff.
func BestMatch(text string, candidates []string, cutoff float64) (string, bool) {
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}

	best := ""
	bestRatio := 0.0
	for _, c := range candidates {
		r := similarity(text, c)
		if r > bestRatio {
			best = c
			bestRatio = r
		}
	}
	if bestRatio >= cutoff {
		return best, true
	}
	return "", false
}

// similarity maps Levenshtein distance onto [0,1], 1 being identical.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

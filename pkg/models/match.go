package models

// MatchResult is one pattern hit from a catalog scan. PatternType is
// "category.name", so callers can branch on the category prefix without
// carrying the catalog around. Groups holds the pattern's capture
// groups in order, excluding the whole match.
type MatchResult struct {
	Matched     bool     `json:"matched"`
	Value       string   `json:"value"`
	Confidence  float64  `json:"confidence"`
	PatternType string   `json:"pattern_type"`
	Groups      []string `json:"groups,omitempty"`
}

// Package metrics exposes Prometheus counters for the analysis core.
// Collaborators embedding the core can register the default registry's
// handler however they serve metrics; the core only increments.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// EntitiesAnalyzed counts drawing entities run through an analyzer,
	// labeled by the analyzer that consumed them.
	EntitiesAnalyzed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwg_entities_analyzed_total",
			Help: "Total number of drawing entities analyzed.",
		},
		[]string{"analyzer"},
	)

	// PatternMatches counts pattern hits by catalog category.
	PatternMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwg_pattern_matches_total",
			Help: "Total number of pattern matches by category.",
		},
		[]string{"category"},
	)

	// ExtractionSkips counts entities skipped during batch extraction.
	ExtractionSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwg_extraction_skips_total",
			Help: "Total number of entities skipped during extraction.",
		},
		[]string{"analyzer", "reason"},
	)
)

func init() {
	prometheus.MustRegister(EntitiesAnalyzed)
	prometheus.MustRegister(PatternMatches)
	prometheus.MustRegister(ExtractionSkips)
}

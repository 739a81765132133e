package drawing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/identify"
	"github.com/tinrooster/dwg2xls2/internal/metrics"
	"github.com/tinrooster/dwg2xls2/internal/patterns"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// EntityAnalysis is the per-entity result: every pattern hit on its text,
// plus typed circuit/device resolutions when the hits warrant them.
type EntityAnalysis struct {
	Text    string                  `json:"text"`
	Matches []models.MatchResult    `json:"matches,omitempty"`
	Circuit *models.ResolvedCircuit `json:"circuit,omitempty"`
	Device  *identify.DeviceInfo    `json:"device,omitempty"`
}

// SectionAnalysis aggregates entity analyses inside a spatial region.
type SectionAnalysis struct {
	Bounds   models.Bounds            `json:"bounds"`
	Entities []EntityAnalysis         `json:"entities,omitempty"`
	Circuits []models.ResolvedCircuit `json:"circuits,omitempty"`
	Devices  []identify.DeviceInfo    `json:"devices,omitempty"`
	Skipped  []Skip                   `json:"skipped,omitempty"`
}

// ContentAnalyzer routes entity text through the electrical pattern
// catalog and hands matching text to the circuit and device identifiers.
// One analyzer per drawing; instances hold no cross-drawing state.
type ContentAnalyzer struct {
	analyzer *patterns.Analyzer
	logger   *zap.Logger
}

// NewContentAnalyzer compiles the electrical catalog. A nil logger
// disables logging.
func NewContentAnalyzer(logger *zap.Logger) (*ContentAnalyzer, error) {
	a, err := patterns.Compile(patterns.ElectricalCatalog())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentAnalyzer{analyzer: a, logger: logger}, nil
}

// SetMaxInputLen overrides the entity text length cap. Call before
// sharing the analyzer across goroutines.
func (ca *ContentAnalyzer) SetMaxInputLen(n int) {
	ca.analyzer.SetMaxInputLen(n)
}

// AnalyzeEntity scans one entity's text (falling back to its block name)
// and resolves circuit/device identities for the matching pattern
// families. Oversized text is a skippable condition, reported through the
// error so section passes can record it and continue.
func (ca *ContentAnalyzer) AnalyzeEntity(entity models.Entity) (EntityAnalysis, error) {
	text := entity.Text
	if text == "" {
		text = entity.BlockName
	}
	analysis := EntityAnalysis{Text: text}
	if text == "" {
		return analysis, nil
	}

	metrics.EntitiesAnalyzed.WithLabelValues("content_analyzer").Inc()

	matches, err := ca.analyzer.Analyze(text)
	if err != nil {
		return analysis, err
	}
	analysis.Matches = matches

	for _, m := range matches {
		category, _, _ := strings.Cut(m.PatternType, ".")
		metrics.PatternMatches.WithLabelValues(category).Inc()
	}

	if hasCategory(matches, "circuit") {
		circuit := identify.IdentifyCircuitType(text)
		analysis.Circuit = &circuit
	}
	if hasCategory(matches, "device") {
		device := identify.IdentifyDevice(text)
		analysis.Device = &device
	}
	return analysis, nil
}

// AnalyzeSection analyzes every entity positioned inside bounds and
// aggregates the identified circuits and devices. Entities that fail
// analysis are collected as skips; the pass always completes.
func (ca *ContentAnalyzer) AnalyzeSection(entities []models.Entity, bounds models.Bounds) SectionAnalysis {
	section := SectionAnalysis{Bounds: bounds}

	for _, entity := range entities {
		if !bounds.Contains(entity.Position) {
			continue
		}
		analysis, err := ca.AnalyzeEntity(entity)
		if err != nil {
			ca.logger.Warn("skipping entity",
				zap.String("text", entity.Text),
				zap.Error(err),
			)
			metrics.ExtractionSkips.WithLabelValues("content_analyzer", "analyze").Inc()
			section.Skipped = append(section.Skipped, Skip{Text: entity.Text, Reason: err.Error()})
			continue
		}
		section.Entities = append(section.Entities, analysis)
		if analysis.Circuit != nil {
			section.Circuits = append(section.Circuits, *analysis.Circuit)
		}
		if analysis.Device != nil {
			section.Devices = append(section.Devices, *analysis.Device)
		}
	}
	return section
}

func hasCategory(matches []models.MatchResult, category string) bool {
	prefix := category + "."
	for _, m := range matches {
		if strings.HasPrefix(m.PatternType, prefix) {
			return true
		}
	}
	return false
}

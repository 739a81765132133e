// Package drawing turns lists of extracted drawing entities into
// structured per-drawing analysis: drawing type classification, device
// and circuit extraction, spatial section analysis, and rack layouts.
//
// Every batch operation here tolerates bad individual records: a block
// that fails to parse is logged, recorded as a skip, and the batch
// continues. Only malformed configuration is an error.
package drawing

import (
	"strings"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// Indicator token sets for drawing classification. Checked
// case-insensitively against the concatenated entity text; circuit
// indicators are checked before floor indicators.
var (
	circuitIndicators = []string{"MCR", "CIRCUIT", "PANEL"}
	floorIndicators   = []string{"ROOM", "DEVICE COUNT", "FLOOR"}
	riserIndicators   = []string{"RISER"}
)

// ClassifyDrawing determines a drawing's type from its entity text
// content. Any circuit indicator anywhere wins; otherwise any riser
// indicator; otherwise any floor indicator; otherwise unknown.
func ClassifyDrawing(entities []models.Entity) models.DrawingType {
	var b strings.Builder
	for _, e := range entities {
		b.WriteString(e.Text)
		b.WriteByte(' ')
	}
	content := strings.ToUpper(b.String())

	for _, ind := range circuitIndicators {
		if strings.Contains(content, ind) {
			return models.DrawingTypeCircuitDiagram
		}
	}
	for _, ind := range riserIndicators {
		if strings.Contains(content, ind) {
			return models.DrawingTypeRiserDiagram
		}
	}
	for _, ind := range floorIndicators {
		if strings.Contains(content, ind) {
			return models.DrawingTypeFloorPlan
		}
	}
	return models.DrawingTypeUnknown
}

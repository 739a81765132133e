package drawing

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/identify"
	"github.com/tinrooster/dwg2xls2/internal/patterns"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// DefaultRackHeight is the assumed RU height of a rack elevation when the
// drawing does not say otherwise.
const DefaultRackHeight = 42

// RackMount places one resolved device at an RU position in a rack.
type RackMount struct {
	Device    models.Device `json:"device"`
	UPosition int           `json:"u_position"`
	UHeight   int           `json:"u_height"`
}

// RackLayout is the assembled elevation for one rack region.
type RackLayout struct {
	RackName string      `json:"rack_name"`
	Mounts   []RackMount `json:"mounts,omitempty"`
	TotalU   int         `json:"total_u"`
	UsedU    int         `json:"used_u"`
}

// RackLayoutAnalyzer assembles a rack elevation from the entities inside
// a rack region: devices stack top-down by drawing Y coordinate, each
// occupying its rack-unit height.
type RackLayoutAnalyzer struct {
	devices  *identify.ITAnalyzer
	location *patterns.Analyzer
	logger   *zap.Logger
}

// NewRackLayoutAnalyzer builds an analyzer over the IT catalog. The
// priority list is the device classification tie-break order; empty
// uses the identify package default.
func NewRackLayoutAnalyzer(priority []string, logger *zap.Logger) (*RackLayoutAnalyzer, error) {
	devices, err := identify.NewITAnalyzer(priority, logger)
	if err != nil {
		return nil, err
	}
	location, err := patterns.Compile(patterns.ITCatalog())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RackLayoutAnalyzer{devices: devices, location: location, logger: logger}, nil
}

// SetMaxInputLen overrides the text length cap on the underlying
// analyzers. Call before sharing across goroutines.
func (ra *RackLayoutAnalyzer) SetMaxInputLen(n int) {
	ra.devices.SetMaxInputLen(n)
	ra.location.SetMaxInputLen(n)
}

// AnalyzeRackLayout resolves the devices among the given entities and
// stacks them into RU positions from the top of the rack down. Entities
// that resolve to no device are ignored, not errors.
func (ra *RackLayoutAnalyzer) AnalyzeRackLayout(entities []models.Entity) RackLayout {
	layout := RackLayout{
		RackName: ra.findRackName(entities),
		TotalU:   DefaultRackHeight,
	}

	sorted := make([]models.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.Y > sorted[j].Position.Y
	})

	currentU := 1
	for _, entity := range sorted {
		device := ra.devices.AnalyzeDevice(entity.Text, entity.Position)
		if device == nil {
			continue
		}
		height := device.RackUnits
		if height < 1 {
			height = 1
		}
		layout.Mounts = append(layout.Mounts, RackMount{
			Device:    *device,
			UPosition: currentU,
			UHeight:   height,
		})
		currentU += height
		layout.UsedU += height
	}
	return layout
}

func (ra *RackLayoutAnalyzer) findRackName(entities []models.Entity) string {
	for _, e := range entities {
		if name, _, ok := ra.location.Find("location", "rack", e.Text); ok {
			return name
		}
	}
	return "UNKNOWN_RACK"
}

package drawing

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/metrics"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

var blockDigitsRe = regexp.MustCompile(`\d+`)

// Skip records one entity dropped during a batch extraction, with the
// reason, for diagnostics. Skips never abort the batch.
type Skip struct {
	BlockName string `json:"block_name,omitempty"`
	Text      string `json:"text,omitempty"`
	Reason    string `json:"reason"`
}

// DeviceExtraction is the aggregate result of a floor plan pass.
type DeviceExtraction struct {
	Devices []models.ExtractedDevice `json:"devices"`
	Skipped []Skip                   `json:"skipped,omitempty"`
}

// DeviceExtractor pulls device blocks out of floor plan entity lists.
type DeviceExtractor struct {
	logger *zap.Logger
}

// NewDeviceExtractor creates an extractor. A nil logger disables logging.
func NewDeviceExtractor(logger *zap.Logger) *DeviceExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeviceExtractor{logger: logger}
}

// ExtractFromFloorplan collects device blocks (block name containing
// DEVICE or FIXTURE) and parses each into an ExtractedDevice. A block
// whose COUNT attribute carries no digit is skipped with a warning and
// the batch continues. An empty entity list yields an empty result.
func (de *DeviceExtractor) ExtractFromFloorplan(entities []models.Entity) DeviceExtraction {
	var result DeviceExtraction

	for _, entity := range entities {
		metrics.EntitiesAnalyzed.WithLabelValues("device_extractor").Inc()

		upper := strings.ToUpper(entity.BlockName)
		if !strings.Contains(upper, "DEVICE") && !strings.Contains(upper, "FIXTURE") {
			continue
		}

		device, reason := parseDeviceBlock(entity)
		if reason != "" {
			de.logger.Warn("skipping device block",
				zap.String("block", entity.BlockName),
				zap.String("reason", reason),
			)
			metrics.ExtractionSkips.WithLabelValues("device_extractor", reason).Inc()
			result.Skipped = append(result.Skipped, Skip{BlockName: entity.BlockName, Reason: reason})
			continue
		}
		result.Devices = append(result.Devices, device)
	}

	return result
}

// parseDeviceBlock decomposes one device block. A non-empty reason means
// the block must be skipped.
func parseDeviceBlock(entity models.Entity) (models.ExtractedDevice, string) {
	countText := ""
	circuit := ""
	for key, value := range entity.Attributes {
		upper := strings.ToUpper(key)
		if strings.Contains(upper, "COUNT") || strings.Contains(upper, "QTY") {
			countText = value
		}
		if strings.Contains(upper, "CIRCUIT") {
			circuit = value
		}
	}

	digits := blockDigitsRe.FindString(countText)
	if digits == "" {
		return models.ExtractedDevice{}, "count attribute has no digits"
	}
	count, err := strconv.Atoi(digits)
	if err != nil {
		return models.ExtractedDevice{}, "count attribute out of range"
	}

	return models.ExtractedDevice{
		ID:         entity.BlockName,
		Type:       blockDeviceType(entity.BlockName),
		Count:      count,
		Circuit:    circuit,
		Position:   entity.Position,
		Attributes: entity.Attributes,
	}, ""
}

func blockDeviceType(blockName string) string {
	upper := strings.ToUpper(blockName)
	switch {
	case strings.Contains(upper, "LIGHT"):
		return "LIGHTING"
	case strings.Contains(upper, "RECEPT"):
		return "RECEPTACLE"
	case strings.Contains(upper, "SWITCH"):
		return "SWITCH"
	default:
		return "UNKNOWN"
	}
}

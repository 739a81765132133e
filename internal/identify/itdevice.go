package identify

import (
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/patterns"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// DefaultCategoryPriority is the order in which device pattern families
// are checked when text could match more than one. The first family with
// a hit wins; this tie-break is part of the public contract, not an
// accident of catalog layout.
var DefaultCategoryPriority = []string{"network", "server", "broadcast", "display", "control"}

// categoryByName maps pattern families to device categories. Families not
// listed resolve to peripheral.
var categoryByName = map[string]models.DeviceCategory{
	"network":   models.DeviceCategoryNetwork,
	"server":    models.DeviceCategoryServer,
	"broadcast": models.DeviceCategoryBroadcast,
	"display":   models.DeviceCategoryDisplay,
	"control":   models.DeviceCategoryControl,
}

var (
	connectionRe = regexp.MustCompile(`(?i)(?:TO|FROM|-->)\s*([A-Z0-9-]+)`)
	digitsRe     = regexp.MustCompile(`[0-9]+`)
)

// ITAnalyzer resolves drawing text into IT/broadcast device records using
// the IT pattern catalog. Construct once and share; AnalyzeDevice is
// read-only over the compiled state.
type ITAnalyzer struct {
	analyzer     *patterns.Analyzer
	priority     []string
	patternNames map[string][]string
	logger       *zap.Logger
}

// NewITAnalyzer compiles the IT catalog. A nil logger disables logging;
// an empty priority uses DefaultCategoryPriority.
func NewITAnalyzer(priority []string, logger *zap.Logger) (*ITAnalyzer, error) {
	catalog := patterns.ITCatalog()
	a, err := patterns.Compile(catalog)
	if err != nil {
		return nil, err
	}
	if len(priority) == 0 {
		priority = DefaultCategoryPriority
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	names := make(map[string][]string, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		ps := make([]string, len(cat.Patterns))
		for i, p := range cat.Patterns {
			ps[i] = p.Name
		}
		names[cat.Name] = ps
	}

	return &ITAnalyzer{analyzer: a, priority: priority, patternNames: names, logger: logger}, nil
}

// SetMaxInputLen overrides the text length cap on the underlying pattern
// analyzer. Call before sharing the analyzer across goroutines.
func (ia *ITAnalyzer) SetMaxInputLen(n int) {
	ia.analyzer.SetMaxInputLen(n)
}

// AnalyzeDevice resolves text into a device record, or nil when no device
// pattern family matches anywhere. Classification walks the priority list
// and stops at the first category with a matching pattern, so text that
// matches both a network and a broadcast convention is classified by
// whichever family has priority.
func (ia *ITAnalyzer) AnalyzeDevice(text string, position models.Point) *models.Device {
	category, patternName := ia.classify(text)
	if category == "" {
		return nil
	}

	device := &models.Device{
		ID:          text,
		Category:    categoryByName[category],
		PatternName: patternName,
		Position:    position,
		Connections: extractConnections(text),
		RackUnits:   1,
	}
	if device.Category == "" {
		device.Category = models.DeviceCategoryPeripheral
	}

	if ip, _, ok := ia.analyzer.Find("addressing", "ip_address", text); ok {
		device.IPAddress = ip
	}
	if vlan, ok := ia.extractVLAN(text); ok {
		device.VLAN = vlan
	}

	ia.logger.Debug("device resolved",
		zap.String("id", device.ID),
		zap.String("category", string(device.Category)),
		zap.String("pattern", patternName),
	)
	return device
}

// classify returns the first (category, pattern) pair in priority order
// whose pattern matches, or empty strings when nothing matches.
func (ia *ITAnalyzer) classify(text string) (category, pattern string) {
	for _, cat := range ia.priority {
		for _, p := range ia.patternNames[cat] {
			if _, _, ok := ia.analyzer.Find(cat, p, text); ok {
				return cat, p
			}
		}
	}
	return "", ""
}

func (ia *ITAnalyzer) extractVLAN(text string) (int, bool) {
	value, _, ok := ia.analyzer.Find("addressing", "vlan", text)
	if !ok {
		return 0, false
	}
	digits := digitsRe.FindString(value)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func extractConnections(text string) []string {
	var conns []string
	for _, m := range connectionRe.FindAllStringSubmatch(text, -1) {
		conns = append(conns, m[1])
	}
	return conns
}

package drawing

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/internal/metrics"
	"github.com/tinrooster/dwg2xls2/pkg/models"
)

var (
	circuitIDRe = regexp.MustCompile(`(?i)(?:MCR|CR|C)[0-9]{3,4}`)
	panelRe     = regexp.MustCompile(`(?i)PANEL\s*([A-Z0-9-]+)`)
	voltageRe   = regexp.MustCompile(`(?i)(?:120|277|480|208|240)\s*V(?:AC)?`)
	amperageRe  = regexp.MustCompile(`(?i)[0-9]+\s*A(?:MP)?\b`)
	deviceIDRe  = regexp.MustCompile(`[A-Z]{1,2}-\d{2,3}`)
)

// CircuitAnalysis describes one circuit found on a drawing, assembled
// from the entities near its label.
type CircuitAnalysis struct {
	ID               string            `json:"id"`
	ConnectedDevices []string          `json:"connected_devices,omitempty"`
	Panel            string            `json:"panel,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

// CircuitExtractor locates circuit labels and assembles their context
// from nearby entities.
//
// The search radius is in drawing units and therefore drawing-scale
// relative; there is no normalization across drawings with different
// scale factors, which is why the radius is a required argument rather
// than a package default.
type CircuitExtractor struct {
	logger *zap.Logger
}

// NewCircuitExtractor creates an extractor. A nil logger disables logging.
func NewCircuitExtractor(logger *zap.Logger) *CircuitExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CircuitExtractor{logger: logger}
}

// ExtractCircuits finds every entity whose text carries a circuit ID and
// analyzes the entities within radius of it. A non-positive radius is a
// configuration error.
func (ce *CircuitExtractor) ExtractCircuits(entities []models.Entity, radius float64) (map[string]CircuitAnalysis, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circuit extraction radius must be positive, got %v", radius)
	}

	circuits := make(map[string]CircuitAnalysis)
	for _, entity := range entities {
		metrics.EntitiesAnalyzed.WithLabelValues("circuit_extractor").Inc()

		circuitID := circuitIDRe.FindString(entity.Text)
		if circuitID == "" {
			continue
		}
		circuitID = strings.ToUpper(circuitID)

		nearby := nearbyEntities(entity.Position, entities, radius)
		circuits[circuitID] = CircuitAnalysis{
			ID:               circuitID,
			ConnectedDevices: connectedDevices(nearby),
			Panel:            associatedPanel(nearby),
			Properties:       circuitProperties(nearby),
		}
	}
	return circuits, nil
}

// nearbyEntities returns entities within radius (Euclidean) of position,
// including the labeled entity itself.
func nearbyEntities(position models.Point, entities []models.Entity, radius float64) []models.Entity {
	var nearby []models.Entity
	for _, e := range entities {
		if position.DistanceTo(e.Position) <= radius {
			nearby = append(nearby, e)
		}
	}
	return nearby
}

func connectedDevices(entities []models.Entity) []string {
	var devices []string
	seen := make(map[string]bool)
	for _, e := range entities {
		for _, id := range deviceIDRe.FindAllString(e.Text, -1) {
			if !seen[id] {
				seen[id] = true
				devices = append(devices, id)
			}
		}
	}
	return devices
}

func associatedPanel(entities []models.Entity) string {
	for _, e := range entities {
		if m := panelRe.FindStringSubmatch(e.Text); m != nil {
			return m[1]
		}
	}
	return ""
}

func circuitProperties(entities []models.Entity) map[string]string {
	props := make(map[string]string)
	for _, e := range entities {
		if v := voltageRe.FindString(e.Text); v != "" && props["voltage"] == "" {
			props["voltage"] = v
		}
		if a := amperageRe.FindString(e.Text); a != "" && props["amperage"] == "" {
			props["amperage"] = a
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

package facility

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Document is the YAML shape of a facility layout: the series
// definitions plus any racks that have equipment configured.
type Document struct {
	Series []RackSeries        `yaml:"rack_series"`
	Racks  []RackConfiguration `yaml:"racks,omitempty"`
}

// ExportYAML serializes the manager's series and configured racks.
// Racks are emitted sorted by ID.
func (m *Manager) ExportYAML() ([]byte, error) {
	doc := Document{Series: m.Series()}
	ids := make([]string, 0, len(m.configs))
	for id := range m.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		doc.Racks = append(doc.Racks, *m.configs[id])
	}
	return yaml.Marshal(doc)
}

// ImportYAML builds a manager from a serialized facility layout. Series
// overlap validation and RU occupancy checks apply exactly as when
// building a manager by hand, so a corrupted document fails instead of
// loading inconsistently.
func ImportYAML(data []byte) (*Manager, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("facility layout: %w", err)
	}
	m, err := NewManager(doc.Series)
	if err != nil {
		return nil, err
	}
	for _, rack := range doc.Racks {
		if _, err := m.Configure(rack.RackID, rack.RUHeight); err != nil {
			return nil, err
		}
		for _, eq := range rack.Equipment {
			if err := m.AddEquipment(rack.RackID, eq); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

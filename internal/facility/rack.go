package facility

import "fmt"

// DefaultRUHeight is the rack height assumed when Configure is called
// without an explicit height.
const DefaultRUHeight = 45

// Equipment is one device mounted in a rack.
type Equipment struct {
	Name       string            `yaml:"name" json:"name"`
	RUStart    int               `yaml:"ru_start" json:"ru_start"`
	RUSize     int               `yaml:"ru_size" json:"ru_size"`
	Type       string            `yaml:"type" json:"type"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// RackConfiguration tracks the RU occupancy of one rack.
type RackConfiguration struct {
	RackID    string      `yaml:"rack_id" json:"rack_id"`
	Room      Room        `yaml:"room" json:"room"`
	Type      RackType    `yaml:"rack_type" json:"rack_type"`
	RUHeight  int         `yaml:"ru_height" json:"ru_height"`
	Equipment []Equipment `yaml:"equipment,omitempty" json:"equipment,omitempty"`

	occupied map[int]string // RU -> equipment name
}

// Configure creates (or returns) the configuration for a rack. The
// rack must resolve to a registered series. A height of zero or less
// uses DefaultRUHeight.
func (m *Manager) Configure(rackID string, ruHeight int) (*RackConfiguration, error) {
	if cfg, ok := m.configs[rackID]; ok {
		return cfg, nil
	}
	info := m.Resolve(rackID)
	if info == nil {
		return nil, fmt.Errorf("rack %s: no registered series covers it", rackID)
	}
	if ruHeight <= 0 {
		ruHeight = DefaultRUHeight
	}
	cfg := &RackConfiguration{
		RackID:   rackID,
		Room:     info.Room,
		Type:     info.Type,
		RUHeight: ruHeight,
		occupied: make(map[int]string),
	}
	m.configs[rackID] = cfg
	return cfg, nil
}

// Rack returns the configuration for a rack, if one exists.
func (m *Manager) Rack(rackID string) (*RackConfiguration, bool) {
	cfg, ok := m.configs[rackID]
	return cfg, ok
}

// AddEquipment mounts a device in the rack, configuring the rack on
// first use. The requested RU span must be inside the rack and free;
// landing on an occupied unit is an error naming the occupant.
func (m *Manager) AddEquipment(rackID string, eq Equipment) error {
	cfg, err := m.Configure(rackID, 0)
	if err != nil {
		return err
	}
	if eq.RUSize < 1 {
		return fmt.Errorf("rack %s: equipment %s has RU size %d", rackID, eq.Name, eq.RUSize)
	}
	if eq.RUStart < 1 || eq.RUStart+eq.RUSize-1 > cfg.RUHeight {
		return fmt.Errorf("rack %s: equipment %s span %d-%d outside 1-%d",
			rackID, eq.Name, eq.RUStart, eq.RUStart+eq.RUSize-1, cfg.RUHeight)
	}
	for ru := eq.RUStart; ru < eq.RUStart+eq.RUSize; ru++ {
		if holder, taken := cfg.occupied[ru]; taken {
			return fmt.Errorf("rack %s: RU %d already occupied by %s", rackID, ru, holder)
		}
	}
	for ru := eq.RUStart; ru < eq.RUStart+eq.RUSize; ru++ {
		cfg.occupied[ru] = eq.Name
	}
	cfg.Equipment = append(cfg.Equipment, eq)
	return nil
}

// UsedRU returns the number of occupied rack units.
func (c *RackConfiguration) UsedRU() int { return len(c.occupied) }

// FreeRU returns the number of unoccupied rack units.
func (c *RackConfiguration) FreeRU() int { return c.RUHeight - len(c.occupied) }

// EquipmentByType lists configured racks of the given type with the
// names of the equipment mounted in each.
func (m *Manager) EquipmentByType(rackType RackType) map[string][]string {
	out := make(map[string][]string)
	for rackID, cfg := range m.configs {
		if cfg.Type != rackType {
			continue
		}
		names := make([]string, 0, len(cfg.Equipment))
		for _, eq := range cfg.Equipment {
			names = append(names, eq.Name)
		}
		out[rackID] = names
	}
	return out
}

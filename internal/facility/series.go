// Package facility maps rack identifiers to rooms and equipment roles
// and tracks per-rack RU occupancy. The mapping is driven by rack
// series: a letter prefix plus a numeric range, so "TX01".."TX17" all
// belong to one series.
package facility

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Room identifies a facility room. The standard rooms are listed below;
// any other string is a custom room.
type Room string

const (
	RoomTE     Room = "TE"
	RoomMCR    Room = "MCR"
	RoomPCR2   Room = "PCR2"
	RoomPCR3   Room = "PCR3"
	RoomStudio Room = "STUDIO"
)

// RackType classifies what a rack houses.
type RackType string

const (
	RackMDF           RackType = "MDF"
	RackCamera        RackType = "CAMERA"
	RackIntercom      RackType = "INTERCOM"
	RackAudio         RackType = "AUDIO"
	RackJackfield     RackType = "JACKFIELD"
	RackRouter        RackType = "ROUTER"
	RackDA            RackType = "DA"
	RackMasterControl RackType = "MC"
	RackCustom        RackType = "CUSTOM"
)

// RackSeries defines a contiguous run of racks sharing a prefix.
type RackSeries struct {
	Prefix      string            `yaml:"prefix" json:"prefix"`
	StartNumber int               `yaml:"start_number" json:"start_number"`
	EndNumber   int               `yaml:"end_number" json:"end_number"`
	Type        RackType          `yaml:"rack_type" json:"rack_type"`
	Room        Room              `yaml:"room" json:"room"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Attributes  map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

func (s RackSeries) contains(prefix string, number int) bool {
	return s.Prefix == prefix && s.StartNumber <= number && number <= s.EndNumber
}

// RackInfo is the resolution of one rack ID against the registered
// series.
type RackInfo struct {
	RackID      string            `json:"rack_id"`
	Series      string            `json:"series"`
	Number      int               `json:"number"`
	Type        RackType          `json:"rack_type"`
	Room        Room              `json:"room"`
	Description string            `json:"description,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

var rackIDRe = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// Manager holds the registered rack series and configured racks.
type Manager struct {
	series  []RackSeries
	configs map[string]*RackConfiguration
}

// DefaultSeries returns the standard facility layout.
func DefaultSeries() []RackSeries {
	return []RackSeries{
		{Prefix: "TX", StartNumber: 1, EndNumber: 17, Type: RackMDF, Room: RoomTE, Description: "MDF and Interconnections"},
		{Prefix: "TC", StartNumber: 3, EndNumber: 13, Type: RackCamera, Room: RoomTE, Description: "Camera Systems"},
		{Prefix: "TD", StartNumber: 1, EndNumber: 13, Type: RackIntercom, Room: RoomTE, Description: "Intercom and ClearCom Systems"},
		{Prefix: "TE", StartNumber: 1, EndNumber: 13, Type: RackCustom, Room: RoomTE, Description: "TE Equipment Series"},
		{Prefix: "TF", StartNumber: 1, EndNumber: 12, Type: RackCustom, Room: RoomTE, Description: "TF Equipment Series"},
		{Prefix: "TG", StartNumber: 1, EndNumber: 12, Type: RackCustom, Room: RoomTE, Description: "TG Equipment Series"},
		{Prefix: "TH", StartNumber: 1, EndNumber: 11, Type: RackAudio, Room: RoomTE, Description: "Audio and Acuity Systems"},
		{Prefix: "TJ", StartNumber: 1, EndNumber: 10, Type: RackJackfield, Room: RoomTE, Description: "Video Jack Fields and DAs"},
		{Prefix: "TK", StartNumber: 1, EndNumber: 10, Type: RackCustom, Room: RoomTE, Description: "TK Equipment Series"},
		{Prefix: "CA", StartNumber: 1, EndNumber: 4, Type: RackMasterControl, Room: RoomMCR, Description: "Master Control Series A"},
		{Prefix: "CB", StartNumber: 1, EndNumber: 4, Type: RackMasterControl, Room: RoomMCR, Description: "Master Control Series B"},
	}
}

// NewManager creates a manager pre-loaded with the given series. Each
// series is validated against the ones before it, so overlapping ranges
// fail here rather than at lookup time.
func NewManager(series []RackSeries) (*Manager, error) {
	m := &Manager{configs: make(map[string]*RackConfiguration)}
	for _, s := range series {
		if err := m.Register(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Register adds a rack series. A series whose numeric range overlaps an
// already registered series with the same prefix is a configuration
// error.
func (m *Manager) Register(s RackSeries) error {
	if s.Prefix == "" {
		return fmt.Errorf("rack series: empty prefix")
	}
	if s.StartNumber > s.EndNumber {
		return fmt.Errorf("rack series %s: start %d after end %d", s.Prefix, s.StartNumber, s.EndNumber)
	}
	for _, existing := range m.series {
		if existing.Prefix != s.Prefix {
			continue
		}
		if s.StartNumber <= existing.EndNumber && existing.StartNumber <= s.EndNumber {
			return fmt.Errorf("rack series %s %d-%d overlaps registered %d-%d",
				s.Prefix, s.StartNumber, s.EndNumber, existing.StartNumber, existing.EndNumber)
		}
	}
	m.series = append(m.series, s)
	return nil
}

// Series returns the registered series in registration order.
func (m *Manager) Series() []RackSeries {
	return append([]RackSeries(nil), m.series...)
}

// Resolve maps a rack ID like "TX01" to its series. The first
// registered series covering the ID wins; nil means no series covers
// it.
func (m *Manager) Resolve(rackID string) *RackInfo {
	parts := rackIDRe.FindStringSubmatch(rackID)
	if parts == nil {
		return nil
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}
	for _, s := range m.series {
		if s.contains(parts[1], number) {
			return &RackInfo{
				RackID:      rackID,
				Series:      s.Prefix,
				Number:      number,
				Type:        s.Type,
				Room:        s.Room,
				Description: s.Description,
				Attributes:  s.Attributes,
			}
		}
	}
	return nil
}

// AllRacks enumerates every rack ID the registered series define,
// zero-padded to two digits and sorted. Useful as the candidate set for
// fuzzy-correcting rack IDs read from noisy drawing text.
func (m *Manager) AllRacks() []string {
	var racks []string
	for _, s := range m.series {
		for n := s.StartNumber; n <= s.EndNumber; n++ {
			racks = append(racks, fmt.Sprintf("%s%02d", s.Prefix, n))
		}
	}
	sort.Strings(racks)
	return racks
}

// RoomRacks enumerates every rack ID the registered series place in the
// room, zero-padded to two digits and sorted.
func (m *Manager) RoomRacks(room Room) []string {
	var racks []string
	for _, s := range m.series {
		if s.Room != room {
			continue
		}
		for n := s.StartNumber; n <= s.EndNumber; n++ {
			racks = append(racks, fmt.Sprintf("%s%02d", s.Prefix, n))
		}
	}
	sort.Strings(racks)
	return racks
}

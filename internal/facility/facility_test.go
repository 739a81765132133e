package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStandardSeries(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	info := m.Resolve("TX01")
	require.NotNil(t, info)
	assert.Equal(t, "TX", info.Series)
	assert.Equal(t, 1, info.Number)
	assert.Equal(t, RackMDF, info.Type)
	assert.Equal(t, RoomTE, info.Room)

	info = m.Resolve("CA03")
	require.NotNil(t, info)
	assert.Equal(t, RoomMCR, info.Room)
	assert.Equal(t, RackMasterControl, info.Type)
}

func TestResolveUnknownRack(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	assert.Nil(t, m.Resolve("ZZ99"), "prefix not registered")
	assert.Nil(t, m.Resolve("TC01"), "TC series starts at 3")
	assert.Nil(t, m.Resolve("not a rack id"))
}

func TestRegisterOverlapFails(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	err = m.Register(RackSeries{Prefix: "TX", StartNumber: 10, EndNumber: 20, Type: RackCustom, Room: RoomTE})
	require.Error(t, err, "TX 10-20 overlaps TX 1-17")

	err = m.Register(RackSeries{Prefix: "TX", StartNumber: 18, EndNumber: 20, Type: RackCustom, Room: RoomTE})
	assert.NoError(t, err, "adjacent range does not overlap")
}

func TestRegisterCustomSeriesWithAttributes(t *testing.T) {
	m, err := NewManager(nil)
	require.NoError(t, err)

	require.NoError(t, m.Register(RackSeries{
		Prefix: "QX", StartNumber: 1, EndNumber: 3,
		Type: RackCustom, Room: Room("ANNEX"),
		Attributes: map[string]string{"power_feed": "B"},
	}))

	info := m.Resolve("QX02")
	require.NotNil(t, info)
	assert.Equal(t, Room("ANNEX"), info.Room)
	assert.Equal(t, "B", info.Attributes["power_feed"])
}

func TestRoomRacks(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	racks := m.RoomRacks(RoomMCR)
	assert.Equal(t, []string{"CA01", "CA02", "CA03", "CA04", "CB01", "CB02", "CB03", "CB04"}, racks)
}

func TestAllRacks(t *testing.T) {
	m, err := NewManager([]RackSeries{
		{Prefix: "CB", StartNumber: 1, EndNumber: 2, Type: RackMasterControl, Room: RoomMCR},
		{Prefix: "CA", StartNumber: 1, EndNumber: 2, Type: RackMasterControl, Room: RoomMCR},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"CA01", "CA02", "CB01", "CB02"}, m.AllRacks())
}

func TestAddEquipmentOccupancy(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	require.NoError(t, m.AddEquipment("TX01", Equipment{
		Name: "EQX frame", RUStart: 10, RUSize: 8, Type: "router",
	}))
	require.NoError(t, m.AddEquipment("TX01", Equipment{
		Name: "patch panel", RUStart: 18, RUSize: 2, Type: "jackfield",
	}))

	err = m.AddEquipment("TX01", Equipment{Name: "DA tray", RUStart: 17, RUSize: 2, Type: "da"})
	require.Error(t, err, "RU 17 is inside the EQX frame span")

	cfg, ok := m.Rack("TX01")
	require.True(t, ok)
	assert.Equal(t, 10, cfg.UsedRU())
	assert.Equal(t, DefaultRUHeight-10, cfg.FreeRU())
}

func TestAddEquipmentBounds(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	err = m.AddEquipment("TX01", Equipment{Name: "tall frame", RUStart: 44, RUSize: 3, Type: "router"})
	assert.Error(t, err, "span runs past the top of the rack")

	err = m.AddEquipment("ZZ01", Equipment{Name: "orphan", RUStart: 1, RUSize: 1, Type: "misc"})
	assert.Error(t, err, "rack must resolve to a series")
}

func TestEquipmentByType(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)

	require.NoError(t, m.AddEquipment("TX01", Equipment{Name: "frame A", RUStart: 1, RUSize: 2, Type: "router"}))
	require.NoError(t, m.AddEquipment("TX02", Equipment{Name: "frame B", RUStart: 1, RUSize: 2, Type: "router"}))

	byType := m.EquipmentByType(RackMDF)
	assert.Equal(t, []string{"frame A"}, byType["TX01"])
	assert.Equal(t, []string{"frame B"}, byType["TX02"])
}

func TestYAMLRoundTrip(t *testing.T) {
	m, err := NewManager(DefaultSeries())
	require.NoError(t, err)
	require.NoError(t, m.AddEquipment("TH03", Equipment{
		Name: "acuity frame", RUStart: 20, RUSize: 6, Type: "switcher",
		Attributes: map[string]string{"pc": "PC2"},
	}))

	data, err := m.ExportYAML()
	require.NoError(t, err)

	restored, err := ImportYAML(data)
	require.NoError(t, err)

	info := restored.Resolve("TH03")
	require.NotNil(t, info)
	assert.Equal(t, RackAudio, info.Type)

	cfg, ok := restored.Rack("TH03")
	require.True(t, ok)
	assert.Equal(t, 6, cfg.UsedRU())
	require.Len(t, cfg.Equipment, 1)
	assert.Equal(t, "PC2", cfg.Equipment[0].Attributes["pc"])
}

func TestImportYAMLRejectsOverlap(t *testing.T) {
	doc := `
rack_series:
  - prefix: TX
    start_number: 1
    end_number: 10
    rack_type: MDF
    room: TE
  - prefix: TX
    start_number: 5
    end_number: 12
    rack_type: CUSTOM
    room: TE
`
	_, err := ImportYAML([]byte(doc))
	assert.Error(t, err)
}

package models

// DeviceCategory categorizes an identified IT or broadcast device.
type DeviceCategory string

const (
	DeviceCategoryNetwork    DeviceCategory = "network"
	DeviceCategoryServer     DeviceCategory = "server"
	DeviceCategoryBroadcast  DeviceCategory = "broadcast"
	DeviceCategoryDisplay    DeviceCategory = "display"
	DeviceCategoryControl    DeviceCategory = "control"
	DeviceCategoryPeripheral DeviceCategory = "peripheral"
	DeviceCategoryUnknown    DeviceCategory = "unknown"
)

// Device is a resolved IT or broadcast device extracted from drawing text.
// Connections holds referenced device IDs only, never embedded records,
// so a device round-trips through serialization without loss.
type Device struct {
	ID          string         `json:"id"`
	Category    DeviceCategory `json:"category"`
	PatternName string         `json:"pattern_name,omitempty"`
	Position    Point          `json:"position"`
	Connections []string       `json:"connections,omitempty"`
	IPAddress   string         `json:"ip_address,omitempty"`
	VLAN        int            `json:"vlan,omitempty"`
	RackUnits   int            `json:"rack_units"`
}

// ExtractedDevice is a device block pulled from a floor plan, before any
// category resolution. Count comes from the block's COUNT/QTY attribute.
type ExtractedDevice struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Count      int               `json:"count"`
	Circuit    string            `json:"circuit,omitempty"`
	Position   Point             `json:"position"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// DrawingType classifies a drawing's overall content.
type DrawingType string

const (
	DrawingTypeFloorPlan      DrawingType = "floor_plan"
	DrawingTypeCircuitDiagram DrawingType = "circuit_diagram"
	DrawingTypeRiserDiagram   DrawingType = "riser_diagram"
	DrawingTypeUnknown        DrawingType = "unknown"
)

package models

// Recognized column names in tabular connection exports.
const (
	ColNumber       = "NUMBER"
	ColDrawing      = "DWG"
	ColOrigin       = "ORIGIN"
	ColDestination  = "DEST"
	ColAlternateDwg = "Alternate Dwg"
	ColWireType     = "Wire Type"
	ColNotes        = "Notes"
	ColProjectID    = "Project ID"
)

// SignalConnection is one row of a cable run sheet, with the ORIGIN and
// DEST strings decomposed into device/port components where the naming
// conventions allow it. The raw fields are always preserved; the parsed
// fields are best effort and empty when no convention matched.
type SignalConnection struct {
	Number           string `json:"number"`
	Drawing          string `json:"drawing,omitempty"`
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
	AlternateDrawing string `json:"alternate_drawing,omitempty"`
	WireType         string `json:"wire_type,omitempty"`
	Notes            string `json:"notes,omitempty"`
	ProjectID        string `json:"project_id,omitempty"`

	// Parsed components.
	OriginDevice string `json:"origin_device,omitempty"`
	OriginPort   string `json:"origin_port,omitempty"`
	DestDevice   string `json:"dest_device,omitempty"`
	DestPort     string `json:"dest_port,omitempty"`
	RSWNumber    string `json:"rsw_number,omitempty"`
}

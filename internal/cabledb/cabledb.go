package cabledb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// CableType is the physical medium of a run.
type CableType string

const (
	CableVideoSDI    CableType = "Video SDI"
	CableAudioAES    CableType = "Audio AES"
	CableAudioAnalog CableType = "Audio Analog"
	CableFiber       CableType = "Fiber"
	CableCat6        CableType = "CAT6"
	CableControl     CableType = "Control"
	CableIntercom    CableType = "Intercom"
	CableTimecode    CableType = "Timecode"
	CableReference   CableType = "Reference"
	CableGPIO        CableType = "GPIO"
	CableMADI        CableType = "MADI"
	CableDante       CableType = "Dante"
)

// Spec is a cable specification record. Optional physical fields are
// pointers so an absent value is distinguishable from zero.
type Spec struct {
	ID           string    `json:"id"`
	Type         CableType `json:"cable_type"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	Model        string    `json:"model,omitempty"`
	Impedance    *float64  `json:"impedance,omitempty"`
	AWG          *string   `json:"awg,omitempty"`
	ShieldType   *string   `json:"shield_type,omitempty"`
	JacketColor  *string   `json:"jacket_color,omitempty"`
	MaxLength    *float64  `json:"max_length,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// Connection is one installed cable run between two rack positions.
type Connection struct {
	CableID         string    `json:"cable_id"`
	SourceRoom      string    `json:"source_room"`
	SourceRack      string    `json:"source_rack"`
	SourceDevice    string    `json:"source_device"`
	SourceConnector string    `json:"source_connector,omitempty"`
	DestRoom        string    `json:"dest_room"`
	DestRack        string    `json:"dest_rack"`
	DestDevice      string    `json:"dest_device"`
	DestConnector   string    `json:"dest_connector,omitempty"`
	Type            CableType `json:"cable_type"`
	SpecID          string    `json:"spec_id,omitempty"`
	Length          float64   `json:"length"`
	LabelScheme     string    `json:"label_scheme,omitempty"`
	Status          string    `json:"status"`
}

// Labels are the printed tags for the two ends of a run.
type Labels struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// AddSpec inserts or replaces a cable specification.
func (s *Store) AddSpec(ctx context.Context, spec Spec) error {
	if spec.ID == "" {
		return fmt.Errorf("cable spec: empty id")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO cable_specs (id, cable_type, manufacturer, model, impedance, awg, shield_type, jacket_color, max_length, notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	cable_type = excluded.cable_type,
	manufacturer = excluded.manufacturer,
	model = excluded.model,
	impedance = excluded.impedance,
	awg = excluded.awg,
	shield_type = excluded.shield_type,
	jacket_color = excluded.jacket_color,
	max_length = excluded.max_length,
	notes = excluded.notes`,
		spec.ID, string(spec.Type), spec.Manufacturer, spec.Model,
		spec.Impedance, spec.AWG, spec.ShieldType, spec.JacketColor,
		spec.MaxLength, spec.Notes)
	if err != nil {
		return fmt.Errorf("add cable spec %s: %w", spec.ID, err)
	}
	return nil
}

// GetSpec fetches a specification by ID; sql.ErrNoRows wraps through
// when it does not exist.
func (s *Store) GetSpec(ctx context.Context, id string) (Spec, error) {
	var spec Spec
	var cableType string
	err := s.db.QueryRowContext(ctx, `
SELECT id, cable_type, manufacturer, model, impedance, awg, shield_type, jacket_color, max_length, notes
FROM cable_specs WHERE id = ?`, id).
		Scan(&spec.ID, &cableType, &spec.Manufacturer, &spec.Model,
			&spec.Impedance, &spec.AWG, &spec.ShieldType, &spec.JacketColor,
			&spec.MaxLength, &spec.Notes)
	if err != nil {
		return Spec{}, fmt.Errorf("get cable spec %s: %w", id, err)
	}
	spec.Type = CableType(cableType)
	return spec, nil
}

// AddConnection inserts or replaces a cable run. An empty CableID gets
// a generated UUID; the stored ID is returned either way. Validation
// failures (spec length limits) abort the insert.
func (s *Store) AddConnection(ctx context.Context, conn Connection) (string, error) {
	if conn.CableID == "" {
		conn.CableID = uuid.NewString()
	}
	if conn.Status == "" {
		conn.Status = "Active"
	}
	if errs := s.Validate(ctx, conn); len(errs) > 0 {
		return "", fmt.Errorf("connection %s: %v", conn.CableID, errs)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO connections (cable_id, source_room, source_rack, source_device, source_connector,
	dest_room, dest_rack, dest_device, dest_connector, cable_type, spec_id, length, label_scheme, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?, ?)
ON CONFLICT(cable_id) DO UPDATE SET
	source_room = excluded.source_room,
	source_rack = excluded.source_rack,
	source_device = excluded.source_device,
	source_connector = excluded.source_connector,
	dest_room = excluded.dest_room,
	dest_rack = excluded.dest_rack,
	dest_device = excluded.dest_device,
	dest_connector = excluded.dest_connector,
	cable_type = excluded.cable_type,
	spec_id = excluded.spec_id,
	length = excluded.length,
	label_scheme = excluded.label_scheme,
	status = excluded.status`,
		conn.CableID, conn.SourceRoom, conn.SourceRack, conn.SourceDevice, conn.SourceConnector,
		conn.DestRoom, conn.DestRack, conn.DestDevice, conn.DestConnector,
		string(conn.Type), conn.SpecID, conn.Length, conn.LabelScheme, conn.Status)
	if err != nil {
		return "", fmt.Errorf("add connection %s: %w", conn.CableID, err)
	}
	return conn.CableID, nil
}

// Validate checks a connection against its referenced spec. The
// returned slice is empty when the connection is acceptable.
func (s *Store) Validate(ctx context.Context, conn Connection) []string {
	var errs []string
	if conn.SourceDevice == "" || conn.DestDevice == "" {
		errs = append(errs, "source and destination devices are required")
	}
	if conn.SpecID != "" {
		spec, err := s.GetSpec(ctx, conn.SpecID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("unknown cable spec %s", conn.SpecID))
		} else if spec.MaxLength != nil && conn.Length > *spec.MaxLength {
			errs = append(errs, fmt.Sprintf("length %.1f exceeds spec maximum %.1f", conn.Length, *spec.MaxLength))
		}
	}
	return errs
}

const connectionColumns = `cable_id, source_room, source_rack, source_device, source_connector,
	dest_room, dest_rack, dest_device, dest_connector, cable_type,
	COALESCE(spec_id, ''), length, label_scheme, status`

func scanConnections(rows *sql.Rows) ([]Connection, error) {
	defer rows.Close()
	var conns []Connection
	for rows.Next() {
		var c Connection
		var cableType string
		err := rows.Scan(&c.CableID, &c.SourceRoom, &c.SourceRack, &c.SourceDevice, &c.SourceConnector,
			&c.DestRoom, &c.DestRack, &c.DestDevice, &c.DestConnector, &cableType,
			&c.SpecID, &c.Length, &c.LabelScheme, &c.Status)
		if err != nil {
			return nil, err
		}
		c.Type = CableType(cableType)
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// ConnectionsByDevice returns every run terminating on the device at
// either end, ordered by cable ID.
func (s *Store) ConnectionsByDevice(ctx context.Context, device string) ([]Connection, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+connectionColumns+` FROM connections
WHERE source_device = ? OR dest_device = ?
ORDER BY cable_id`, device, device)
	if err != nil {
		return nil, fmt.Errorf("connections for device %s: %w", device, err)
	}
	return scanConnections(rows)
}

// ConnectionsByRack returns every run touching the rack, ordered by
// cable ID.
func (s *Store) ConnectionsByRack(ctx context.Context, room, rack string) ([]Connection, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT `+connectionColumns+` FROM connections
WHERE (source_room = ? AND source_rack = ?) OR (dest_room = ? AND dest_rack = ?)
ORDER BY cable_id`, room, rack, room, rack)
	if err != nil {
		return nil, fmt.Errorf("connections for rack %s/%s: %w", room, rack, err)
	}
	return scanConnections(rows)
}

// Rooms lists every room referenced by any connection, sorted.
func (s *Store) Rooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT source_room FROM connections
UNION SELECT dest_room FROM connections
ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var rooms []string
	for rows.Next() {
		var room string
		if err := rows.Scan(&room); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// GenerateLabels produces the printed end labels for a run: cable ID
// with an A/B end suffix plus the room and rack it lands in.
func GenerateLabels(conn Connection) Labels {
	return Labels{
		Source: fmt.Sprintf("%s-A %s/%s", conn.CableID, conn.SourceRoom, conn.SourceRack),
		Dest:   fmt.Sprintf("%s-B %s/%s", conn.CableID, conn.DestRoom, conn.DestRack),
	}
}

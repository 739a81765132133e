package signalflow

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// Naming conventions found on run sheets. Origins follow the acuity
// form "TH03 PC2 ACUITY OUT-K1"; destinations carry an MDA/MDB/MDC
// multiviewer port and often a trailing RSW number, as in
// "TK01 - MDA-1-16(PC2-MV1)RSW-82".
var (
	acuityOriginRe = regexp.MustCompile(`(?P<device>T[HK][0-9]+)\s*(?P<port>PC[23])\s*ACUITY\s*OUT-(?P<output>[A-Z][0-9])`)
	frameDeviceRe  = regexp.MustCompile(`^([A-Z]+[0-9]+)\b`)
	mdPortRe       = regexp.MustCompile(`(MD[ABC]-[0-9]+-[0-9]+)`)
	rswRe          = regexp.MustCompile(`RSW-([0-9]+)`)
	eqxCardRe      = regexp.MustCompile(`(?i)CARD\s*#([0-9]+)`)
)

// ParseConnection builds a SignalConnection from one run sheet row. The
// raw columns are always carried through; the device/port decomposition
// is best effort and leaves fields empty when no convention matches.
func ParseConnection(row map[string]string) models.SignalConnection {
	conn := models.SignalConnection{
		Number:           strings.TrimSpace(row[models.ColNumber]),
		Drawing:          strings.TrimSpace(row[models.ColDrawing]),
		Origin:           strings.TrimSpace(row[models.ColOrigin]),
		Destination:      strings.TrimSpace(row[models.ColDestination]),
		AlternateDrawing: strings.TrimSpace(row[models.ColAlternateDwg]),
		WireType:         strings.TrimSpace(row[models.ColWireType]),
		Notes:            strings.TrimSpace(row[models.ColNotes]),
		ProjectID:        strings.TrimSpace(row[models.ColProjectID]),
	}

	if m := acuityOriginRe.FindStringSubmatch(conn.Origin); m != nil {
		conn.OriginDevice = m[1]
		conn.OriginPort = m[2] + " OUT-" + m[3]
	} else if m := frameDeviceRe.FindStringSubmatch(conn.Origin); m != nil {
		conn.OriginDevice = m[1]
	}

	if dev, rest, found := strings.Cut(conn.Destination, "-"); found {
		conn.DestDevice = strings.TrimSpace(dev)
		if m := mdPortRe.FindStringSubmatch(rest); m != nil {
			conn.DestPort = m[1]
		}
	} else if m := frameDeviceRe.FindStringSubmatch(conn.Destination); m != nil {
		conn.DestDevice = m[1]
	}
	if m := rswRe.FindStringSubmatch(conn.Destination); m != nil {
		conn.RSWNumber = m[1]
	}
	return conn
}

// ConnectionIndex groups parsed connections two ways at once: by the
// device a cable leaves and by the device it lands on. The two maps are
// independent; a row whose origin and destination both parsed appears
// in both.
type ConnectionIndex struct {
	Connections   []models.SignalConnection            `json:"connections"`
	ByOrigin      map[string][]models.SignalConnection `json:"by_origin"`
	ByDestination map[string][]models.SignalConnection `json:"by_destination"`
}

// ProcessConnectionData parses every row and indexes the results.
// Rows with neither an ORIGIN nor a DEST value are dropped.
func ProcessConnectionData(rows []map[string]string, logger *zap.Logger) ConnectionIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	idx := ConnectionIndex{
		ByOrigin:      make(map[string][]models.SignalConnection),
		ByDestination: make(map[string][]models.SignalConnection),
	}
	for _, row := range rows {
		conn := ParseConnection(row)
		if conn.Origin == "" && conn.Destination == "" {
			logger.Debug("connection row skipped", zap.String("number", conn.Number))
			continue
		}
		idx.Connections = append(idx.Connections, conn)
		if conn.OriginDevice != "" {
			idx.ByOrigin[conn.OriginDevice] = append(idx.ByOrigin[conn.OriginDevice], conn)
		}
		if conn.DestDevice != "" {
			idx.ByDestination[conn.DestDevice] = append(idx.ByDestination[conn.DestDevice], conn)
		}
	}
	logger.Info("connection rows processed",
		zap.Int("rows", len(rows)),
		zap.Int("parsed", len(idx.Connections)),
		zap.Int("origin_devices", len(idx.ByOrigin)),
		zap.Int("destination_devices", len(idx.ByDestination)))
	return idx
}

// ForDevice returns every connection touching the device, outgoing
// first, then incoming.
func (idx ConnectionIndex) ForDevice(deviceID string) []models.SignalConnection {
	out := append([]models.SignalConnection(nil), idx.ByOrigin[deviceID]...)
	return append(out, idx.ByDestination[deviceID]...)
}

// ConnectionSummary aggregates a processed run sheet.
type ConnectionSummary struct {
	TotalConnections int                 `json:"total_connections"`
	UniqueDevices    []string            `json:"unique_devices"`
	WireTypes        map[string]int      `json:"wire_types"`
	CardAssignments  map[string][]string `json:"card_assignments,omitempty"`
}

// SummarizeConnections tallies the run sheet: total rows, the sorted
// set of devices seen on either end, wire type counts, and EQX card
// assignments taken from notes of the form "EQX ... CARD #3".
func SummarizeConnections(conns []models.SignalConnection) ConnectionSummary {
	summary := ConnectionSummary{
		TotalConnections: len(conns),
		WireTypes:        make(map[string]int),
		CardAssignments:  make(map[string][]string),
	}
	devices := make(map[string]bool)
	for _, c := range conns {
		if c.OriginDevice != "" {
			devices[c.OriginDevice] = true
		}
		if c.DestDevice != "" {
			devices[c.DestDevice] = true
		}
		if c.WireType != "" {
			summary.WireTypes[c.WireType]++
		}
		if strings.Contains(strings.ToUpper(c.Notes), "EQX") {
			if m := eqxCardRe.FindStringSubmatch(c.Notes); m != nil {
				summary.CardAssignments[m[1]] = append(summary.CardAssignments[m[1]], c.Number)
			}
		}
	}
	summary.UniqueDevices = make([]string, 0, len(devices))
	for d := range devices {
		summary.UniqueDevices = append(summary.UniqueDevices, d)
	}
	sort.Strings(summary.UniqueDevices)
	return summary
}

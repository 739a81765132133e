// Package patterns holds the layered regex catalogs used to pull
// engineering metadata out of drawing text, and the analyzer that scans
// text against every catalog entry.
//
// Catalogs are explicit registration tables: ordered slices of categories,
// each an ordered slice of named patterns. Declaration order is the scan
// order, which makes analysis results deterministic.
package patterns

// Pattern is a single named regular expression.
type Pattern struct {
	Name string
	Expr string
}

// Category groups related patterns under a domain name. The category and
// pattern names combine into the MatchResult pattern type "category.name".
type Category struct {
	Name     string
	Patterns []Pattern
}

// Catalog is an ordered set of categories compiled together.
type Catalog struct {
	Name       string
	Categories []Category
}

// ElectricalCatalog returns the pattern catalog for electrical drawing
// elements: circuit identifiers, device callouts, room/location references,
// electrical properties, and drawing annotations.
func ElectricalCatalog() Catalog {
	return Catalog{
		Name: "electrical",
		Categories: []Category{
			{
				Name: "circuit",
				Patterns: []Pattern{
					{"mcr_circuit", `MCR\s*[0-9]{3,4}`},                         // MCR1038, MCR 1039
					{"panel_circuit", `[A-Z]{1,2}[0-9]{1,2}-[0-9]{1,3}`},        // A1-103, LP2-24
					{"circuit_reference", `C[A-Z][0-9]{2,3}`},                   // CA02, CB103
					{"circuit_number", `(?:CKT|CCT|CIRCUIT)\s*#?\s*[0-9]{1,3}`}, // Circuit #12, CKT 24
				},
			},
			{
				Name: "device",
				Patterns: []Pattern{
					{"device_count", `(?:DEVICE|DEV)\.?\s*(?:COUNT|QTY|QUANTITY)?\s*[:=]?\s*(\d+)`},
					{"fixture_type", `(?:FXT|FIXTURE)\s*TYPE\s*[:=]?\s*([A-Z][0-9]{1,2})`},
					{"device_id", `(?:DEV|DEVICE)\s*ID\s*[:=]?\s*([A-Z0-9\-]+)`},
					{"switch_id", `SW\s*[0-9]{1,3}[A-Z]?`},         // SW12, SW12A
					{"receptacle", `RECEP(?:TACLE)?\s*[0-9]{1,3}`}, // RECEP12, RECEPTACLE 24
				},
			},
			{
				Name: "location",
				Patterns: []Pattern{
					{"room_number", `(?:RM|ROOM)\s*[A-Z]?-?[0-9]{3,4}[A-Z]?`}, // RM-123, ROOM A-101
					{"floor_level", `(?:FLOOR|LVL|LEVEL)\s*[0-9]{1,2}`},
					{"area_name", `(?:AREA|ZONE)\s*[A-Z][0-9]?`},
					{"grid_reference", `[A-Z][0-9]+/[0-9]+`}, // A1/23, B12/45
				},
			},
			{
				Name: "electrical",
				Patterns: []Pattern{
					{"voltage", `(?:120|277|480|208|240)\s*V(?:AC)?`},
					{"phase", `(?:1|3)(?:\s*-|\s+)(?:PH|PHASE|Φ)`},
					{"amperage", `[0-9]+\s*A(?:MP)?`},
					{"wire_size", `#\s*[0-9]{1,2}\s*(?:AWG)?`},
					{"conduit_size", `[0-9]/[0-9]"C?`}, // 3/4"C, 1/2"
				},
			},
			{
				Name: "annotation",
				Patterns: []Pattern{
					{"revision", `REV(?:ISION)?\s*[0-9]+`},
					{"detail", `DETAIL\s*[A-Z0-9]/[A-Z0-9]`},
					{"scale", `SCALE\s*(?:1|3|6)"\s*=\s*(?:1|2|4)'(?:-|_)0"`},
					{"sheet_number", `(?:SHT|SHEET)\s*[A-Z][0-9]{1,2}`},
				},
			},
		},
	}
}

// ITCatalog returns the pattern catalog for IT and broadcast equipment
// naming conventions, network addressing, and rack/room placement.
// The first five categories are device classification families; their
// declaration order here is the default classification priority.
func ITCatalog() Catalog {
	return Catalog{
		Name: "it",
		Categories: []Category{
			{
				Name: "network",
				Patterns: []Pattern{
					{"switch", `(?:SW|SWITCH)[0-9]{2,3}(?:-[A-Z])?`}, // SW01, SWITCH102-A
					{"router", `(?:RTR|ROUTER)[0-9]{2,3}`},           // RTR01, ROUTER102
					{"firewall", `(?:FW|FIREWALL)[0-9]{2,3}`},        // FW01, FIREWALL02
					{"wireless_ap", `(?:WAP|AP)[0-9]{2,3}`},          // WAP01, AP102
					{"patch_panel", `(?:PP|PATCH)[0-9]{2,3}[A-Z]?`},  // PP01A, PATCH102
				},
			},
			{
				Name: "server",
				Patterns: []Pattern{
					{"rack_server", `(?:SRV|SERVER)[0-9]{2,3}`}, // SRV01, SERVER102
					{"blade", `BLADE[0-9]{2,3}`},                // BLADE01
					{"storage", `(?:STG|SAN|NAS)[0-9]{2,3}`},    // STG01, SAN102
					{"backup", `(?:BKP|BACKUP)[0-9]{2,3}`},      // BKP01, BACKUP102
				},
			},
			{
				Name: "broadcast",
				Patterns: []Pattern{
					{"camera", `(?:CAM|CAMERA)[-]?[0-9]{2,3}(?:-[A-Z]+)?`}, // CAM01, CAM-12-ST
					{"video_switcher", `(?:VS|VSWITCH)[0-9]{2,3}`},         // VS01, VSWITCH102
					{"encoder", `(?:ENC|ENCODER)[0-9]{2,3}`},               // ENC01, ENCODER102
					{"decoder", `(?:DEC|DECODER)[0-9]{2,3}`},               // DEC01, DECODER102
					{"matrix", `(?:MTX|MATRIX)[0-9]{2,3}`},                 // MTX01, MATRIX102
				},
			},
			{
				Name: "display",
				Patterns: []Pattern{
					{"monitor", `(?:MON|MONITOR)[0-9]{2,3}`},      // MON01, MONITOR102
					{"display", `(?:DISP|DISPLAY)[0-9]{2,3}`},     // DISP01, DISPLAY102
					{"video_wall", `(?:VW|VWALL)[0-9]{2,3}`},      // VW01, VWALL102
					{"projector", `(?:PROJ|PROJECTOR)[0-9]{2,3}`}, // PROJ01, PROJECTOR102
				},
			},
			{
				Name: "control",
				Patterns: []Pattern{
					{"controller", `(?:CTRL|CONTROLLER)[0-9]{2,3}`}, // CTRL01, CONTROLLER102
					{"processor", `(?:PROC|PROCESSOR)[0-9]{2,3}`},   // PROC01, PROCESSOR102
					{"kvm", `KVM[0-9]{2,3}(?:-[A-Z])?`},             // KVM01, KVM102-A
					{"touchpanel", `(?:TP|TOUCH)[0-9]{2,3}`},        // TP01, TOUCH102
				},
			},
			{
				Name: "addressing",
				Patterns: []Pattern{
					{"ip_address", `(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`},
					{"subnet_mask", `(?:/[0-9]{1,2})|(?:255\.(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){2}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?))`},
					{"vlan", `VLAN\s*[0-9]{1,4}`},
					{"mac_address", `(?:[0-9A-Fa-f]{2}[:-]){5}(?:[0-9A-Fa-f]{2})`},
				},
			},
			{
				Name: "location",
				Patterns: []Pattern{
					{"rack", `(?:RACK|R)[0-9]{2,3}(?:-[A-Z])?`}, // RACK01, R102-A
					{"rack_position", `U[0-9]{1,2}`},            // U1, U42
					{"room", `(?:RM|ROOM)[0-9]{2,3}[A-Z]?`},     // RM101, ROOM102A
					{"data_center", `DC[0-9]{1,2}`},             // DC1, DC02
				},
			},
		},
	}
}

// BroadcastCatalog returns the pattern catalog for broadcast facility
// wiring: frame/slot references, signal flow blocks, control triggers,
// and inter-device connection notations.
func BroadcastCatalog() Catalog {
	return Catalog{
		Name: "broadcast",
		Categories: []Category{
			{
				Name: "frame",
				Patterns: []Pattern{
					{"frame_slot", `([A-Z]+[0-9]+)\s*FR([0-9]+)\s*SL([0-9]+)`}, // TJ07 FR1 SL1
					{"frame_id", `[A-Z]+[0-9]+`},                               // TJ07, TH03
					{"slot_id", `(?:SL|SLOT)[0-9]+`},                           // SL1, SLOT12
				},
			},
			{
				Name: "signal",
				Patterns: []Pattern{
					{"rtr_block", `RTR\s*(?:Src|Dst)?\s*[0-9]+`},    // RTR Src 384
					{"fsk_block", `(?:TK04|TX04)\s*FSK`},            // TK04 FSK
					{"stereo_path", `[0-9]+\.[0-9]+\s*STEREO`},      // 7.1 STEREO
					{"connect_server", `Connect\s*server\s*[0-9]+`}, // Connect server 1
				},
			},
			{
				Name: "control",
				Patterns: []Pattern{
					{"gpio", `GPIO\s*[0-9]+`},                   // GPIO 14
					{"relay", `(?:TX04|TK04)\s*RELAY\s*[0-9]+`}, // TX04 RELAY 2
					{"tally", `(?:TG11|TALLY)\s*[0-9]+`},        // TALLY 1
					{"pcr", `PCR[0-9]+`},                        // PCR2
				},
			},
			{
				Name: "connection",
				Patterns: []Pattern{
					{"patch_connection", `([A-Z][0-9]+)\s*->\s*([A-Z][0-9]+)`}, // TJ03 -> TJ09
					{"signal_flow", `([A-Z0-9]+)\s*→\s*([A-Z0-9]+)`},
					{"dwg_reference", `DWG'?S?\s*[0-9]+`}, // DWG's 22749
				},
			},
		},
	}
}

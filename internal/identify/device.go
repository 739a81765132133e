package identify

import (
	"regexp"
	"strconv"
)

// DeviceInfo is the result of identifying an electrical device callout.
// Count and Type are extracted independently; either may be absent and
// partial results are normal.
type DeviceInfo struct {
	Type     string `json:"type"`
	Count    int    `json:"count,omitempty"`
	HasCount bool   `json:"has_count"`
	Original string `json:"original"`
}

// deviceTypeByLetter maps the single-letter device prefix convention used
// on electrical drawings to a device type name.
var deviceTypeByLetter = map[string]string{
	"L": "Lighting",
	"R": "Receptacle",
	"S": "Switch",
	"M": "Motor",
	"P": "Panel",
	"T": "Transformer",
	"D": "Distribution",
}

var (
	countRe      = regexp.MustCompile(`(?i)(?:COUNT|QTY)\s*[:=]?\s*(\d+)`)
	typePrefixRe = regexp.MustCompile(`^([A-Z])[0-9-]`)
)

// IdentifyDevice extracts the device count and type from a callout string.
// The count comes from a COUNT/QTY token anywhere in the text; the type
// from a single uppercase letter immediately followed by a digit or hyphen
// at the start, mapped through the fixed letter table. Absence of either
// yields a partial result, not an error.
func IdentifyDevice(text string) DeviceInfo {
	info := DeviceInfo{Type: "unknown", Original: text}

	if m := countRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			info.Count = n
			info.HasCount = true
		}
	}

	if m := typePrefixRe.FindStringSubmatch(text); m != nil {
		if name, ok := deviceTypeByLetter[m[1]]; ok {
			info.Type = name
		}
	}

	return info
}

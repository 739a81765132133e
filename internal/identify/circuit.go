// Package identify resolves raw matched text into typed domain records:
// circuit identities, electrical device callouts, and IT/broadcast devices.
//
// All identifiers share one shape: an ordered rule table where the first
// matching rule wins and a miss is a value (unknown type, nil device),
// never an error.
package identify

import (
	"regexp"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

// circuitRule maps one anchored pattern to a circuit type. Rules are
// checked in order; order is part of the contract (mcr before panel before
// emergency before control) because the pattern families overlap.
type circuitRule struct {
	ctype       models.CircuitType
	description string
	re          *regexp.Regexp
}

var circuitRules = []circuitRule{
	{models.CircuitTypeMCR, "Motor Control Relay",
		regexp.MustCompile(`(?i)^MCR\s*(?P<number>[0-9]{3,4})`)},
	// Hyphenated panel form (A1-103, LP2-24) first so the panel token keeps
	// its trailing digits; plain form (A103) second.
	{models.CircuitTypePanel, "Panel Circuit",
		regexp.MustCompile(`(?i)^(?P<panel>[A-Z]{1,2}[0-9]{0,2})-(?P<circuit>[0-9]{1,3})`)},
	{models.CircuitTypePanel, "Panel Circuit",
		regexp.MustCompile(`(?i)^(?P<panel>[A-Z]{1,2})(?P<circuit>[0-9]{1,3})`)},
	{models.CircuitTypeEmergency, "Emergency Circuit",
		regexp.MustCompile(`(?i)^E(?P<panel>[A-Z])(?P<number>[0-9]{2,3})`)},
	{models.CircuitTypeControl, "Control Circuit",
		regexp.MustCompile(`(?i)^C(?P<type>[A-Z])(?P<number>[0-9]{2,3})`)},
}

// IdentifyCircuitType resolves a circuit ID into its type and structured
// components. The first matching rule wins; named capture groups become
// the Components map. When nothing matches, the result carries type
// unknown with the original text preserved. Never fails.
func IdentifyCircuitType(circuitID string) models.ResolvedCircuit {
	for _, rule := range circuitRules {
		m := rule.re.FindStringSubmatch(circuitID)
		if m == nil {
			continue
		}
		components := make(map[string]string)
		for i, name := range rule.re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			components[name] = m[i]
		}
		return models.ResolvedCircuit{
			Type:        rule.ctype,
			Description: rule.description,
			Components:  components,
			Original:    circuitID,
		}
	}
	return models.ResolvedCircuit{Type: models.CircuitTypeUnknown, Original: circuitID}
}

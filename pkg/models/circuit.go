package models

// CircuitType classifies an identified circuit reference.
type CircuitType string

const (
	CircuitTypeMCR       CircuitType = "mcr"
	CircuitTypePanel     CircuitType = "panel"
	CircuitTypeEmergency CircuitType = "emergency"
	CircuitTypeControl   CircuitType = "control"
	CircuitTypeUnknown   CircuitType = "unknown"
)

// ResolvedCircuit is a circuit ID decomposed into its typed parts.
// Components carries the named captures of the rule that matched
// (panel letters, circuit number, ...). Original always preserves the
// input text, including when nothing matched and Type is unknown.
type ResolvedCircuit struct {
	Type        CircuitType       `json:"type"`
	Description string            `json:"description,omitempty"`
	Components  map[string]string `json:"components,omitempty"`
	Original    string            `json:"original"`
}

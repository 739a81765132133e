package identify

import (
	"testing"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

func TestIdentifyCircuitType(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantType   models.CircuitType
		components map[string]string
	}{
		{
			name:       "mcr circuit",
			input:      "MCR 1038",
			wantType:   models.CircuitTypeMCR,
			components: map[string]string{"number": "1038"},
		},
		{
			name:       "hyphenated panel circuit",
			input:      "A1-103",
			wantType:   models.CircuitTypePanel,
			components: map[string]string{"panel": "A1", "circuit": "103"},
		},
		{
			name:       "lighting panel circuit",
			input:      "LP2-24",
			wantType:   models.CircuitTypePanel,
			components: map[string]string{"panel": "LP2", "circuit": "24"},
		},
		{
			name:       "plain panel circuit",
			input:      "A103",
			wantType:   models.CircuitTypePanel,
			components: map[string]string{"panel": "A", "circuit": "103"},
		},
		{
			name:     "unknown keeps original",
			input:    "not a circuit",
			wantType: models.CircuitTypeUnknown,
		},
		{
			name:     "empty string",
			input:    "",
			wantType: models.CircuitTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyCircuitType(tt.input)
			if got.Type != tt.wantType {
				t.Fatalf("type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Original != tt.input {
				t.Errorf("original = %q, want %q", got.Original, tt.input)
			}
			for key, want := range tt.components {
				if got.Components[key] != want {
					t.Errorf("components[%q] = %q, want %q", key, got.Components[key], want)
				}
			}
		})
	}
}

func TestIdentifyCircuitType_OrderingContract(t *testing.T) {
	// CA02 satisfies both the plain panel rule and the control rule; panel
	// is checked first, so panel wins. The tie-break order is documented
	// behavior.
	got := IdentifyCircuitType("CA02")
	if got.Type != models.CircuitTypePanel {
		t.Errorf("type = %s, want %s (panel checked before control)", got.Type, models.CircuitTypePanel)
	}
}

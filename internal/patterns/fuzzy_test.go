package patterns

import "testing"

func TestBestMatch(t *testing.T) {
	candidates := []string{"PANEL A1", "PANEL B2", "RECEPTACLE"}

	tests := []struct {
		name   string
		text   string
		cutoff float64
		want   string
		wantOK bool
	}{
		{"exact", "PANEL A1", 0.85, "PANEL A1", true},
		{"one char off ties to first candidate", "PANEL A2", 0.85, "PANEL A1", true},
		{"no candidate close enough", "XYZ", 0.85, "", false},
		{"zero cutoff uses default", "PANEL A1", 0, "PANEL A1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestMatch(tt.text, candidates, tt.cutoff)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("BestMatch(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	if _, ok := BestMatch("anything", nil, 0.85); ok {
		t.Error("expected no match for empty candidate list")
	}
}

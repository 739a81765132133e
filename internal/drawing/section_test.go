package drawing

import (
	"testing"

	"github.com/tinrooster/dwg2xls2/pkg/models"
)

func TestAnalyzeEntity(t *testing.T) {
	ca, err := NewContentAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}

	analysis, err := ca.AnalyzeEntity(models.Entity{Text: "MCR 1038"})
	if err != nil {
		t.Fatal(err)
	}
	if len(analysis.Matches) == 0 {
		t.Fatal("expected pattern matches")
	}
	if analysis.Circuit == nil {
		t.Fatal("expected circuit resolution")
	}
	if analysis.Circuit.Type != models.CircuitTypeMCR {
		t.Errorf("circuit type = %s, want mcr", analysis.Circuit.Type)
	}
}

func TestAnalyzeEntity_BlockNameFallback(t *testing.T) {
	ca, err := NewContentAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}

	analysis, err := ca.AnalyzeEntity(models.Entity{BlockName: "RECEP 12"})
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Device == nil {
		t.Fatal("expected device resolution from block name")
	}
}

func TestAnalyzeSection_SpatialFilter(t *testing.T) {
	ca, err := NewContentAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}

	input := []models.Entity{
		{Text: "MCR 1038", Position: models.Point{X: 5, Y: 5}},
		{Text: "MCR 2041", Position: models.Point{X: 100, Y: 100}}, // outside bounds
	}
	bounds := models.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	section := ca.AnalyzeSection(input, bounds)
	if len(section.Entities) != 1 {
		t.Fatalf("entities analyzed = %d, want 1", len(section.Entities))
	}
	if len(section.Circuits) != 1 {
		t.Fatalf("circuits = %d, want 1", len(section.Circuits))
	}
	if section.Circuits[0].Original != "MCR 1038" {
		t.Errorf("circuit original = %q", section.Circuits[0].Original)
	}
}

func TestAnalyzeEntity_InputCap(t *testing.T) {
	ca, err := NewContentAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}
	ca.SetMaxInputLen(8)

	if _, err := ca.AnalyzeEntity(models.Entity{Text: "MCR 1038 PANEL A SCHEDULE"}); err == nil {
		t.Fatal("expected error for text beyond the cap")
	}

	// Section passes record the oversized entity as a skip and continue.
	input := []models.Entity{
		{Text: "MCR 1038 PANEL A SCHEDULE", Position: models.Point{X: 1, Y: 1}},
		{Text: "MCR 1038", Position: models.Point{X: 2, Y: 2}},
	}
	section := ca.AnalyzeSection(input, models.Bounds{MaxX: 10, MaxY: 10})
	if len(section.Skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(section.Skipped))
	}
	if len(section.Circuits) != 1 {
		t.Errorf("circuits = %d, want 1 from the in-cap entity", len(section.Circuits))
	}
}

func TestAnalyzeSection_Empty(t *testing.T) {
	ca, err := NewContentAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}
	section := ca.AnalyzeSection(nil, models.Bounds{MaxX: 10, MaxY: 10})
	if len(section.Entities) != 0 || len(section.Skipped) != 0 {
		t.Errorf("expected empty section, got %+v", section)
	}
}

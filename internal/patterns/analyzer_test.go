package patterns

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCompile_InvalidPatternNamesOffender(t *testing.T) {
	bad := Catalog{
		Name: "test",
		Categories: []Category{
			{Name: "good", Patterns: []Pattern{{"ok", `[A-Z]+`}}},
			{Name: "broken", Patterns: []Pattern{{"unclosed", `[A-Z`}}},
		},
	}

	_, err := Compile(bad)
	if err == nil {
		t.Fatal("expected compile error, got nil")
	}

	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if ce.Category != "broken" || ce.Pattern != "unclosed" {
		t.Errorf("error names %s.%s, want broken.unclosed", ce.Category, ce.Pattern)
	}
}

func TestCompile_AllCatalogs(t *testing.T) {
	for _, catalog := range []Catalog{ElectricalCatalog(), ITCatalog(), BroadcastCatalog()} {
		if _, err := Compile(catalog); err != nil {
			t.Errorf("catalog %q failed to compile: %v", catalog.Name, err)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a, err := Compile(ElectricalCatalog())
	if err != nil {
		t.Fatal(err)
	}

	text := "PANEL A1-103 FEEDS RECEP 12 IN RM-1204, 120V 20A CKT 24"
	first, err := a.Analyze(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) == 0 {
		t.Fatal("expected matches, got none")
	}

	for i := 0; i < 10; i++ {
		again, err := a.Analyze(text)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n first %v\n again %v", i, first, again)
		}
	}
}

func TestAnalyze_MultipleCategories(t *testing.T) {
	a, err := Compile(ElectricalCatalog())
	if err != nil {
		t.Fatal(err)
	}

	// Contains both a circuit reference and a voltage.
	results, err := a.Analyze("MCR 1038 - 277V")
	if err != nil {
		t.Fatal(err)
	}

	var sawCircuit, sawElectrical bool
	for _, r := range results {
		if r.Confidence != 1.0 {
			t.Errorf("confidence = %v, want 1.0", r.Confidence)
		}
		if strings.HasPrefix(r.PatternType, "circuit.") {
			sawCircuit = true
		}
		if strings.HasPrefix(r.PatternType, "electrical.") {
			sawElectrical = true
		}
	}
	if !sawCircuit || !sawElectrical {
		t.Errorf("want matches from both circuit and electrical categories, got %v", results)
	}
}

func TestAnalyze_DeclarationOrder(t *testing.T) {
	a, err := Compile(ITCatalog())
	if err != nil {
		t.Fatal(err)
	}

	// SW01 (network.switch) and CAM01 (broadcast.camera): network is
	// declared first, so its match must come first.
	results, err := a.Analyze("SW01 UPLINK TO CAM01")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(results))
	}
	if results[0].PatternType != "network.switch" {
		t.Errorf("first match = %s, want network.switch", results[0].PatternType)
	}
}

func TestAnalyze_CaseInsensitive(t *testing.T) {
	a, err := Compile(ElectricalCatalog())
	if err != nil {
		t.Fatal(err)
	}

	results, err := a.Analyze("mcr 1038")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("lowercase input did not match")
	}
}

func TestAnalyze_InputTooLarge(t *testing.T) {
	a, err := Compile(ElectricalCatalog())
	if err != nil {
		t.Fatal(err)
	}
	a.SetMaxInputLen(32)

	_, err = a.Analyze(strings.Repeat("A1-103 ", 10))
	var tooLarge *InputTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected *InputTooLargeError, got %v", err)
	}
	if tooLarge.Limit != 32 {
		t.Errorf("limit = %d, want 32", tooLarge.Limit)
	}
}

func TestAnalyze_NoMatchIsEmpty(t *testing.T) {
	a, err := Compile(ElectricalCatalog())
	if err != nil {
		t.Fatal(err)
	}

	results, err := a.Analyze("nothing to see here")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %v", results)
	}
}

func TestFind(t *testing.T) {
	a, err := Compile(ITCatalog())
	if err != nil {
		t.Fatal(err)
	}

	value, _, ok := a.Find("addressing", "vlan", "trunk carries VLAN 110")
	if !ok {
		t.Fatal("expected vlan match")
	}
	if value != "VLAN 110" {
		t.Errorf("value = %q, want %q", value, "VLAN 110")
	}

	if _, _, ok := a.Find("addressing", "no_such", "VLAN 110"); ok {
		t.Error("unknown pattern name should not match")
	}
}

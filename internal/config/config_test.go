package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.Radius != 50.0 {
		t.Errorf("Radius = %v, want 50", cfg.Analysis.Radius)
	}
	if cfg.Analysis.BottleneckThreshold != 5 {
		t.Errorf("BottleneckThreshold = %d, want 5", cfg.Analysis.BottleneckThreshold)
	}
	if cfg.Router.PortsPerCard != 18 {
		t.Errorf("PortsPerCard = %d, want 18", cfg.Router.PortsPerCard)
	}
	want := []string{"network", "server", "broadcast", "display", "control"}
	if len(cfg.Analysis.CategoryPriority) != len(want) {
		t.Fatalf("CategoryPriority = %v, want %v", cfg.Analysis.CategoryPriority, want)
	}
	for i, c := range want {
		if cfg.Analysis.CategoryPriority[i] != c {
			t.Errorf("CategoryPriority[%d] = %q, want %q", i, cfg.Analysis.CategoryPriority[i], c)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("analysis:\n  radius: 25\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.Radius != 25 {
		t.Errorf("Radius = %v, want 25 from file", cfg.Analysis.Radius)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Database.Path != "cabledb.sqlite" {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}
}

func TestLoadRejectsBadRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  radius: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative radius")
	}
}

func TestNewLoggerFormats(t *testing.T) {
	v, err := NewViper("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewLogger(v); err != nil {
		t.Errorf("NewLogger with defaults: %v", err)
	}

	v.Set("logging.format", "console")
	if _, err := NewLogger(v); err != nil {
		t.Errorf("NewLogger console: %v", err)
	}

	v.Set("logging.format", "xml")
	if _, err := NewLogger(v); err == nil {
		t.Error("expected error for unknown format")
	}

	v.Set("logging.format", "json")
	v.Set("logging.level", "verbose")
	if _, err := NewLogger(v); err == nil {
		t.Error("expected error for unknown level")
	}
}

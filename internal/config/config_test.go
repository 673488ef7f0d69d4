package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rampsim/internal/vehicle"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine != "box2d" {
		t.Errorf("expected engine box2d, got %s", cfg.Engine)
	}
	if cfg.Camera.Scale != 100 {
		t.Errorf("expected scale 100, got %f", cfg.Camera.Scale)
	}
	if cfg.Control.BaseSpeed != 12 || cfg.Control.BrakeGain != 2 {
		t.Errorf("unexpected gains %+v", cfg.Control)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("steep")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Terrain.Segments[1].DyCm != -150 {
		t.Errorf("expected 3b dy -150, got %f", cfg.Terrain.Segments[1].DyCm)
	}

	cfg.Terrain.Segments[1].DyCm = 0
	if GetPreset("steep").Terrain.Segments[1].DyCm != -150 {
		t.Error("preset shared between callers")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")

	cfg := GetPreset("jump")
	cfg.Engine = "chipmunk"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Engine != "chipmunk" {
		t.Errorf("expected chipmunk, got %s", loaded.Engine)
	}
	if loaded.Terrain != cfg.Terrain {
		t.Errorf("terrain mismatch: %+v vs %+v", loaded.Terrain, cfg.Terrain)
	}
	if loaded.Vehicle != cfg.Vehicle {
		t.Errorf("vehicle mismatch")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	os.WriteFile(path, []byte("gravity: -3.5\ncontrol:\n  base_speed: 20\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gravity != -3.5 || cfg.Control.BaseSpeed != 20 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Control.BrakeGain != 2 || cfg.Vehicle.WheelR != 0.31 {
		t.Error("defaults lost")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }, ErrInvalidConfig},
		{"max frame below step", func(c *Config) { c.Loop.MaxFrame = 0.001 }, ErrInvalidConfig},
		{"empty viewport", func(c *Config) { c.Viewport.W = 0 }, ErrInvalidConfig},
		{"bad vehicle", func(c *Config) { c.Vehicle.WheelR = 0 }, vehicle.ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

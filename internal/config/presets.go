package config

import "sort"

// Presets are terrain variations on the default car. Each call builds a
// fresh Config so callers may modify the result.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"steep": func() *Config {
		cfg := DefaultConfig()
		cfg.Terrain.Segments[0].DyCm = -20
		cfg.Terrain.Segments[1].DxCm = 300
		cfg.Terrain.Segments[1].DyCm = -150
		return cfg
	},
	"flat": func() *Config {
		cfg := DefaultConfig()
		for i := range cfg.Terrain.Segments {
			cfg.Terrain.Segments[i].DyCm = 0
		}
		return cfg
	},
	"jump": func() *Config {
		cfg := DefaultConfig()
		cfg.Terrain.Segments[0].DxCm = 150
		cfg.Terrain.Segments[0].DyCm = 40
		cfg.Terrain.Segments[1].DxCm = 0
		cfg.Terrain.Segments[1].DyCm = -80
		cfg.Terrain.Segments[2].DxCm = 400
		cfg.Terrain.Segments[2].DyCm = -10
		return cfg
	},
	"moon": func() *Config {
		cfg := DefaultConfig()
		cfg.Gravity = -1.62
		cfg.Duration = 25
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

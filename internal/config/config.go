package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/terrain"
	"github.com/san-kum/rampsim/internal/vehicle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEngine   = "box2d"
	DefaultGravity  = -9.81
	DefaultWidth    = 1280
	DefaultHeight   = 720
	DefaultFrameDt  = 1.0 / 60
	DefaultDuration = 15.0
	DefaultFixedDt  = 1.0 / 60
	DefaultMaxFrame = 0.05
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Engine   string          `yaml:"engine"`
	Gravity  float64         `yaml:"gravity"`
	Duration float64         `yaml:"duration"`
	FrameDt  float64         `yaml:"frame_dt"`
	LogLevel string          `yaml:"log_level"`
	Terrain  terrain.Profile `yaml:"terrain"`
	Vehicle  vehicle.Spec    `yaml:"vehicle"`
	Camera   camera.Config   `yaml:"camera"`
	Viewport camera.Viewport `yaml:"viewport"`
	Control  control.Gains   `yaml:"control"`
	Loop     LoopConfig      `yaml:"loop"`
}

type LoopConfig struct {
	FixedDt  float64 `yaml:"fixed_dt"`
	MaxFrame float64 `yaml:"max_frame"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:   DefaultEngine,
		Gravity:  DefaultGravity,
		Duration: DefaultDuration,
		FrameDt:  DefaultFrameDt,
		LogLevel: "info",
		Terrain:  terrain.DefaultProfile(),
		Vehicle:  vehicle.DefaultSpec(),
		Camera:   camera.DefaultConfig(),
		Viewport: camera.Viewport{W: DefaultWidth, H: DefaultHeight},
		Control:  control.DefaultGains(),
		Loop: LoopConfig{
			FixedDt:  DefaultFixedDt,
			MaxFrame: DefaultMaxFrame,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GravityVec() geom.Vec2 { return geom.V(0, c.Gravity) }

func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Duration > 0, "duration must be positive"},
		{c.FrameDt > 0, "frame_dt must be positive"},
		{c.Loop.FixedDt > 0, "loop.fixed_dt must be positive"},
		{c.Loop.MaxFrame >= c.Loop.FixedDt, "loop.max_frame must be at least one step"},
		{c.Camera.Scale > 0, "camera.scale must be positive"},
		{c.Viewport.W > 0 && c.Viewport.H > 0, "viewport must be non-empty"},
		{c.Terrain.Friction >= 0, "terrain.friction must not be negative"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, ch.msg)
		}
	}
	if err := c.Vehicle.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

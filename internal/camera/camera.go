// Package camera maps world meters (y up) to screen pixels (y down).
package camera

import (
	"math"

	"github.com/san-kum/rampsim/internal/geom"
)

type Config struct {
	Scale        float64 `yaml:"scale" json:"scale"`                 // px per meter
	FollowXFrac  float64 `yaml:"follow_x_frac" json:"follow_x_frac"` // chassis position across the screen
	BaselineFrac float64 `yaml:"baseline_frac" json:"baseline_frac"` // world y=0 measured from the top
}

func DefaultConfig() Config {
	return Config{Scale: 100, FollowXFrac: 0.65, BaselineFrac: 0.6}
}

// Viewport is the drawing area in pixels.
type Viewport struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

type Camera struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	cfg Config
	vp  Viewport
}

func New(cfg Config, vp Viewport) *Camera {
	c := &Camera{cfg: cfg, vp: vp}
	c.PinBaseline()
	return c
}

func (c *Camera) Config() Config     { return c.cfg }
func (c *Camera) Viewport() Viewport { return c.vp }
func (c *Camera) Scale() float64     { return c.cfg.Scale }

// Resize adopts a new viewport and re-pins the baseline.
func (c *Camera) Resize(vp Viewport) {
	c.vp = vp
	c.PinBaseline()
}

// FollowOffset is the world distance from the left edge to the chassis.
func (c *Camera) FollowOffset() float64 {
	return c.vp.W * c.cfg.FollowXFrac / c.cfg.Scale
}

// Follow tracks chassisX horizontally. The view never scrolls left of x=0.
func (c *Camera) Follow(chassisX float64) {
	c.X = math.Max(0, chassisX-c.FollowOffset())
}

// PinBaseline places world y=0 at BaselineFrac of the screen height.
func (c *Camera) PinBaseline() {
	c.Y = (c.vp.H*c.cfg.BaselineFrac - c.vp.H) / c.cfg.Scale
}

// Update runs once per frame.
func (c *Camera) Update(chassisX float64) {
	c.Follow(chassisX)
	c.PinBaseline()
}

func (c *Camera) WorldToScreen(p geom.Vec2) geom.Vec2 {
	s := c.cfg.Scale
	return geom.V((p.X()-c.X)*s, c.vp.H-(p.Y()-c.Y)*s)
}

// ScreenToWorld inverts WorldToScreen.
func (c *Camera) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	s := c.cfg.Scale
	return geom.V(p.X()/s+c.X, (c.vp.H-p.Y())/s+c.Y)
}

package metrics

import (
	"math"

	"github.com/san-kum/rampsim/internal/sim"
)

// Distance is net chassis travel along x since the first frame.
type Distance struct {
	start, last float64
	started     bool
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(f sim.Frame) {
	if !d.started {
		d.start = f.Chassis.X
		d.started = true
	}
	d.last = f.Chassis.X
}

func (d *Distance) Value() float64 { return d.last - d.start }

func (d *Distance) Reset() { *d = Distance{} }

type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(f sim.Frame) { m.max = math.Max(m.max, f.Speed()) }

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// Airtime accumulates time with both wheels more than clearance above the
// ground under them. Ground height comes from the terrain polyline.
type Airtime struct {
	ground    func(x float64) float64
	radius    float64
	clearance float64
	last      float64
	air       float64
	started   bool
}

func NewAirtime(ground func(x float64) float64, wheelR, clearance float64) *Airtime {
	return &Airtime{ground: ground, radius: wheelR, clearance: clearance}
}

func (a *Airtime) Name() string { return "airtime" }

func (a *Airtime) airborne(w sim.WheelFrame) bool {
	return w.Y-a.radius-a.ground(w.X) > a.clearance
}

func (a *Airtime) Observe(f sim.Frame) {
	if a.started && a.airborne(f.Rear) && a.airborne(f.Front) {
		a.air += f.Time - a.last
	}
	a.last = f.Time
	a.started = true
}

func (a *Airtime) Value() float64 { return a.air }

func (a *Airtime) Reset() {
	a.last, a.air, a.started = 0, 0, false
}

// Default returns the metrics recorded by headless runs.
func Default(ground func(x float64) float64, wheelR, gravity float64) []sim.Metric {
	return []sim.Metric{
		NewDistance(),
		NewMaxSpeed(),
		NewControlEffort(),
		NewBrakeTime(),
		NewStability(0.35),
		NewMaxPitch(),
		NewAirtime(ground, wheelR, 0.05),
		NewEnergy(gravity),
	}
}

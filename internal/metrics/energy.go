package metrics

import (
	"github.com/san-kum/rampsim/internal/sim"
)

// Energy is the mean specific mechanical energy of the chassis (J/kg):
// kinetic from its linear velocity plus potential above y=0.
type Energy struct {
	name        string
	gravity     float64
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	v := f.Speed()
	e.totalEnergy += 0.5*v*v + e.gravity*f.Chassis.Y
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

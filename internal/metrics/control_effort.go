package metrics

import (
	"math"

	"github.com/san-kum/rampsim/internal/sim"
)

// ControlEffort is the mean absolute motor speed command across both
// wheels.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(f sim.Frame) {
	c.sum += (math.Abs(f.Rear.MotorSpeed) + math.Abs(f.Front.MotorSpeed)) / 2
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// BrakeTime is the simulated time spent with the brake held.
type BrakeTime struct {
	last    float64
	braking float64
	started bool
}

func NewBrakeTime() *BrakeTime { return &BrakeTime{} }

func (b *BrakeTime) Name() string { return "brake_time" }

func (b *BrakeTime) Observe(f sim.Frame) {
	if b.started && f.Control.Braking {
		b.braking += f.Time - b.last
	}
	b.last = f.Time
	b.started = true
}

func (b *BrakeTime) Value() float64 { return b.braking }

func (b *BrakeTime) Reset() { *b = BrakeTime{} }

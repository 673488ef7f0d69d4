package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/sim"
)

func frame(t, x, angle float64) sim.Frame {
	return sim.Frame{Time: t, Chassis: sim.Pose{X: x, Angle: angle}}
}

func TestDistance(t *testing.T) {
	d := NewDistance()
	for i, x := range []float64{2, 2.5, 4, 3} {
		d.Observe(frame(float64(i), x, 0))
	}
	if d.Value() != 1 {
		t.Errorf("expected distance 1, got %f", d.Value())
	}
	d.Reset()
	if d.Value() != 0 {
		t.Error("expected zero distance after reset")
	}
}

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	m.Observe(sim.Frame{VX: 3, VY: 4})
	m.Observe(sim.Frame{VX: 1})
	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	c := NewControlEffort()
	c.Observe(sim.Frame{Rear: sim.WheelFrame{MotorSpeed: -12}, Front: sim.WheelFrame{MotorSpeed: -12}})
	c.Observe(sim.Frame{})
	if c.Value() != 6 {
		t.Errorf("expected 6, got %f", c.Value())
	}
}

func TestBrakeTime(t *testing.T) {
	b := NewBrakeTime()
	b.Observe(sim.Frame{Time: 0})
	b.Observe(sim.Frame{Time: 0.5, Control: control.State{Braking: true}})
	b.Observe(sim.Frame{Time: 0.75, Control: control.State{Braking: true}})
	b.Observe(sim.Frame{Time: 1.0})
	if math.Abs(b.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %f", b.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(0.3)
	s.Observe(frame(0, 0, 0.1))
	s.Observe(frame(0, 0, -0.5))
	s.Observe(frame(0, 0, 0.2))
	s.Observe(frame(0, 0, 0.4))
	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}

	p := NewMaxPitch()
	p.Observe(frame(0, 0, -0.5))
	p.Observe(frame(0, 0, 0.4))
	if p.Value() != 0.5 {
		t.Errorf("expected max pitch 0.5, got %f", p.Value())
	}
}

func TestAirtime(t *testing.T) {
	flat := func(float64) float64 { return 0 }
	a := NewAirtime(flat, 0.3, 0.05)

	wheels := func(t, y float64) sim.Frame {
		return sim.Frame{
			Time:  t,
			Rear:  sim.WheelFrame{Pose: sim.Pose{Y: y}},
			Front: sim.WheelFrame{Pose: sim.Pose{Y: y}},
		}
	}
	a.Observe(wheels(0, 0.3))
	a.Observe(wheels(0.1, 0.5))
	a.Observe(wheels(0.2, 0.6))
	a.Observe(wheels(0.3, 0.31))
	if math.Abs(a.Value()-0.2) > 1e-12 {
		t.Errorf("expected airtime 0.2, got %f", a.Value())
	}
}

func TestEnergy(t *testing.T) {
	e := NewEnergy(9.81)
	e.Observe(sim.Frame{VX: 2, Chassis: sim.Pose{Y: 1}})
	if math.Abs(e.Value()-(2+9.81)) > 1e-9 {
		t.Errorf("expected %f, got %f", 2+9.81, e.Value())
	}
	e.Reset()
	if e.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestDefaultNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default(func(float64) float64 { return 0 }, 0.31, 9.81) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 metrics, got %d", len(seen))
	}
}

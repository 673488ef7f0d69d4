package metrics

import (
	"math"

	"github.com/san-kum/rampsim/internal/sim"
)

// Stability is the fraction of frames with chassis pitch inside the
// threshold (radians).
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	if math.Abs(f.Chassis.Angle) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxPitch is the largest absolute chassis angle seen.
type MaxPitch struct {
	max float64
}

func NewMaxPitch() *MaxPitch { return &MaxPitch{} }

func (m *MaxPitch) Name() string { return "max_pitch" }

func (m *MaxPitch) Observe(f sim.Frame) {
	m.max = math.Max(m.max, math.Abs(f.Chassis.Angle))
}

func (m *MaxPitch) Value() float64 { return m.max }

func (m *MaxPitch) Reset() { m.max = 0 }

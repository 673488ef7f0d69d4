package control

import "github.com/san-kum/rampsim/internal/engine"

type State struct {
	Throttle int  `json:"throttle"`
	Braking  bool `json:"braking"`
}

// Press records a key-down. It reports true for KeyReset, which the caller
// handles by rebuilding the vehicle; the state itself is unchanged.
func (s *State) Press(k Key) (reset bool) {
	switch k {
	case KeyForward:
		s.Throttle = 1
	case KeyReverse:
		s.Throttle = -1
	case KeyBrake:
		s.Braking = true
	case KeyReset:
		return true
	}
	return false
}

func (s *State) Release(k Key) {
	switch k {
	case KeyForward:
		if s.Throttle == 1 {
			s.Throttle = 0
		}
	case KeyReverse:
		if s.Throttle == -1 {
			s.Throttle = 0
		}
	case KeyBrake:
		s.Braking = false
	}
}

// Gains are the motor constants. Neither has a physical derivation; both
// are exposed through config.
type Gains struct {
	BaseSpeed float64 `yaml:"base_speed" json:"base_speed"` // rad/s
	BrakeGain float64 `yaml:"brake_gain" json:"brake_gain"`
}

func DefaultGains() Gains {
	return Gains{BaseSpeed: 12, BrakeGain: 2}
}

// MotorCommand returns the joint motor speed for a wheel spinning at omega.
// Braking is velocity feedback against the current spin; driving is negated
// because a clockwise wheel rolls toward +x.
func MotorCommand(s State, g Gains, omega float64) float64 {
	if s.Braking {
		return -omega * g.BrakeGain
	}
	return -(g.BaseSpeed * float64(s.Throttle))
}

// Wheel pairs a wheel body with the joint that drives it.
type Wheel struct {
	Body  engine.Body
	Joint engine.Joint
}

func Drive(s State, g Gains, wheels ...Wheel) {
	for _, w := range wheels {
		if w.Body == nil || w.Joint == nil {
			continue
		}
		w.Joint.SetMotorSpeed(MotorCommand(s, g, w.Body.AngularVelocity()))
	}
}

package vehicle

import (
	"errors"
	"fmt"

	"github.com/san-kum/rampsim/internal/geom"
)

var ErrInvalidSpec = errors.New("vehicle: invalid spec")

// Spec describes a two-wheeled car in meters. Axle offsets are measured
// from the chassis centre; AxleDrop is how far the axles sit below it.
type Spec struct {
	Length          float64 `yaml:"length" json:"length"`
	ChassisW        float64 `yaml:"chassis_w" json:"chassis_w"`
	ChassisH        float64 `yaml:"chassis_h" json:"chassis_h"`
	WheelR          float64 `yaml:"wheel_r" json:"wheel_r"`
	AxleFrontX      float64 `yaml:"axle_front_x" json:"axle_front_x"`
	AxleRearX       float64 `yaml:"axle_rear_x" json:"axle_rear_x"`
	AxleDrop        float64 `yaml:"axle_drop" json:"axle_drop"`
	ChassisDensity  float64 `yaml:"chassis_density" json:"chassis_density"`
	ChassisFriction float64 `yaml:"chassis_friction" json:"chassis_friction"`
	WheelDensity    float64 `yaml:"wheel_density" json:"wheel_density"`
	WheelFriction   float64 `yaml:"wheel_friction" json:"wheel_friction"`
	MaxMotorTorque  float64 `yaml:"max_motor_torque" json:"max_motor_torque"` // N·m
	StartX          float64 `yaml:"start_x" json:"start_x"`
	StartY          float64 `yaml:"start_y" json:"start_y"`
}

// DefaultSpec is a 4.2 m hatchback with a 2.685 m wheelbase and asymmetric
// overhangs (0.8 m front, 0.715 m rear). It starts on the first flat run,
// 1 cm above its resting height.
func DefaultSpec() Spec {
	const (
		length = 4.2
		r      = 0.31
		drop   = 0.035
	)
	return Spec{
		Length:          length,
		ChassisW:        length,
		ChassisH:        0.42,
		WheelR:          r,
		AxleFrontX:      length/2 - 0.8,
		AxleRearX:       -(length/2 - 0.715),
		AxleDrop:        drop,
		ChassisDensity:  2.0,
		ChassisFriction: 0.6,
		WheelDensity:    1.0,
		WheelFriction:   1.2,
		MaxMotorTorque:  80,
		StartX:          2.0,
		StartY:          r + drop + 0.01,
	}
}

func (s Spec) Start() geom.Vec2 { return geom.V(s.StartX, s.StartY) }

// RearAxle and FrontAxle are the wheel centres for a chassis at c.
func (s Spec) RearAxle(c geom.Vec2) geom.Vec2 {
	return c.Add(geom.V(s.AxleRearX, -s.AxleDrop))
}

func (s Spec) FrontAxle(c geom.Vec2) geom.Vec2 {
	return c.Add(geom.V(s.AxleFrontX, -s.AxleDrop))
}

// Wheelbase is the distance between the axles.
func (s Spec) Wheelbase() float64 { return s.AxleFrontX - s.AxleRearX }

// Clearance is the gap between the chassis underside and flat ground when
// the wheels rest on it.
func (s Spec) Clearance() float64 { return s.WheelR + s.AxleDrop - s.ChassisH/2 }

func (s Spec) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"chassis_w", s.ChassisW},
		{"chassis_h", s.ChassisH},
		{"wheel_r", s.WheelR},
		{"chassis_density", s.ChassisDensity},
		{"wheel_density", s.WheelDensity},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidSpec, p.name, p.v)
		}
	}
	if s.MaxMotorTorque < 0 {
		return fmt.Errorf("%w: max_motor_torque must not be negative", ErrInvalidSpec)
	}
	if s.AxleFrontX <= s.AxleRearX {
		return fmt.Errorf("%w: front axle must be ahead of rear axle", ErrInvalidSpec)
	}
	return nil
}

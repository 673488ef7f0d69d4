// Package vehicle assembles the car: a box chassis and two circular wheels
// pinned to it by motorised revolute joints.
package vehicle

import (
	"fmt"

	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/engine"
	"go.uber.org/zap"
)

type Vehicle struct {
	spec    Spec
	Chassis engine.Body
	Rear    control.Wheel
	Front   control.Wheel
}

// Build creates the chassis and wheels in w. If any step fails the bodies
// created so far are destroyed.
func Build(w engine.World, spec Spec) (*Vehicle, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return assemble(w, spec)
}

func assemble(w engine.World, spec Spec) (v *Vehicle, err error) {
	var created []engine.Body
	defer func() {
		if err != nil {
			for _, b := range created {
				_ = w.DestroyBody(b)
			}
		}
	}()

	start := spec.Start()
	chassis, err := w.CreateBody(engine.BodyDef{Kind: engine.Dynamic, Position: start})
	if err != nil {
		return nil, fmt.Errorf("vehicle: chassis: %w", err)
	}
	created = append(created, chassis)
	err = chassis.Attach(engine.FixtureDef{
		Shape:    engine.Box{HalfW: spec.ChassisW / 2, HalfH: spec.ChassisH / 2},
		Density:  spec.ChassisDensity,
		Friction: spec.ChassisFriction,
	})
	if err != nil {
		return nil, fmt.Errorf("vehicle: chassis fixture: %w", err)
	}

	wheel := func(name string, pos engine.BodyDef) (control.Wheel, error) {
		b, err := w.CreateBody(pos)
		if err != nil {
			return control.Wheel{}, fmt.Errorf("vehicle: %s wheel: %w", name, err)
		}
		created = append(created, b)
		err = b.Attach(engine.FixtureDef{
			Shape:    engine.Circle{Radius: spec.WheelR},
			Density:  spec.WheelDensity,
			Friction: spec.WheelFriction,
		})
		if err != nil {
			return control.Wheel{}, fmt.Errorf("vehicle: %s wheel fixture: %w", name, err)
		}
		j, err := w.CreateRevoluteJoint(engine.RevoluteJointDef{
			A:              chassis,
			B:              b,
			Anchor:         pos.Position,
			EnableMotor:    true,
			MaxMotorTorque: spec.MaxMotorTorque,
		})
		if err != nil {
			return control.Wheel{}, fmt.Errorf("vehicle: %s joint: %w", name, err)
		}
		return control.Wheel{Body: b, Joint: j}, nil
	}

	rear, err := wheel("rear", engine.BodyDef{Kind: engine.Dynamic, Position: spec.RearAxle(start)})
	if err != nil {
		return nil, err
	}
	front, err := wheel("front", engine.BodyDef{Kind: engine.Dynamic, Position: spec.FrontAxle(start)})
	if err != nil {
		return nil, err
	}
	return &Vehicle{spec: spec, Chassis: chassis, Rear: rear, Front: front}, nil
}

func (v *Vehicle) Spec() Spec { return v.spec }

// Wheels returns rear then front.
func (v *Vehicle) Wheels() []control.Wheel {
	return []control.Wheel{v.Rear, v.Front}
}

// Destroy removes all three bodies; their joints go with them.
func (v *Vehicle) Destroy(w engine.World) error {
	for _, b := range []engine.Body{v.Chassis, v.Rear.Body, v.Front.Body} {
		if b == nil {
			continue
		}
		if err := w.DestroyBody(b); err != nil {
			return fmt.Errorf("vehicle: destroy: %w", err)
		}
	}
	v.Chassis, v.Rear, v.Front = nil, control.Wheel{}, control.Wheel{}
	return nil
}

// Replace tears the current car down and builds a fresh one from spec. The
// old bodies are gone before the new ones exist, and the handles swap in a
// single assignment once the build has succeeded. A nil receiver just
// builds.
func Replace(w engine.World, v *Vehicle, spec Spec, log *zap.Logger) (*Vehicle, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := spec.Validate(); err != nil {
		return v, err
	}
	if v != nil {
		if err := v.Destroy(w); err != nil {
			return v, err
		}
	}
	next, err := assemble(w, spec)
	if err != nil {
		return v, err
	}
	if v == nil {
		v = next
	} else {
		*v = *next
	}
	log.Debug("vehicle built",
		zap.Float64("x", spec.StartX),
		zap.Float64("y", spec.StartY),
		zap.Float64("wheelbase", spec.Wheelbase()))
	return v, nil
}

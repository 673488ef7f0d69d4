// Package enginetest provides an in-memory engine.World that records every
// call. Bodies never move on their own; tests position them explicitly.
package enginetest

import (
	"fmt"

	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/geom"
)

type World struct {
	gravity geom.Vec2
	Steps   int
	StepDts []float64
	Created int
	Bodies  []*Body
	Joints  []*Joint
	// Destroyed lists destroyed bodies in destruction order.
	Destroyed []*Body

	// FailCreate makes the next CreateBody calls fail while positive.
	FailCreate int
}

type Body struct {
	ID       int
	Def      engine.BodyDef
	Fixtures []engine.FixtureDef
	Pos      geom.Vec2
	Ang      float64
	Omega    float64
	Vel      geom.Vec2
	Dead     bool
	owner    *World
}

type Joint struct {
	Def    engine.RevoluteJointDef
	Speed  float64
	Speeds []float64
	Dead   bool
}

func New() *World {
	return &World{gravity: geom.V(0, -9.81)}
}

func (w *World) Gravity() geom.Vec2 { return w.gravity }

func (w *World) CreateBody(def engine.BodyDef) (engine.Body, error) {
	if w.FailCreate > 0 {
		w.FailCreate--
		return nil, fmt.Errorf("enginetest: injected create failure")
	}
	w.Created++
	b := &Body{ID: w.Created, Def: def, Pos: def.Position, owner: w}
	w.Bodies = append(w.Bodies, b)
	return b, nil
}

func (w *World) own(b engine.Body) (*Body, error) {
	fb, ok := b.(*Body)
	if !ok || fb.owner != w {
		return nil, engine.ErrForeignBody
	}
	if fb.Dead {
		return nil, engine.ErrDestroyed
	}
	return fb, nil
}

func (w *World) DestroyBody(b engine.Body) error {
	fb, err := w.own(b)
	if err != nil {
		return err
	}
	fb.Dead = true
	w.Destroyed = append(w.Destroyed, fb)

	alive := w.Bodies[:0]
	for _, other := range w.Bodies {
		if other != fb {
			alive = append(alive, other)
		}
	}
	w.Bodies = alive

	joints := w.Joints[:0]
	for _, j := range w.Joints {
		if j.Def.A == b || j.Def.B == b {
			j.Dead = true
			continue
		}
		joints = append(joints, j)
	}
	w.Joints = joints
	return nil
}

func (w *World) CreateRevoluteJoint(def engine.RevoluteJointDef) (engine.Joint, error) {
	if _, err := w.own(def.A); err != nil {
		return nil, err
	}
	if _, err := w.own(def.B); err != nil {
		return nil, err
	}
	j := &Joint{Def: def, Speed: def.MotorSpeed}
	w.Joints = append(w.Joints, j)
	return j, nil
}

func (w *World) Step(dt float64) {
	w.Steps++
	w.StepDts = append(w.StepDts, dt)
}

// Live returns live bodies of the given kind.
func (w *World) Live(kind engine.BodyKind) []*Body {
	var out []*Body
	for _, b := range w.Bodies {
		if b.Def.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

func (b *Body) Attach(def engine.FixtureDef) error {
	if b.Dead {
		return engine.ErrDestroyed
	}
	b.Fixtures = append(b.Fixtures, def)
	return nil
}

func (b *Body) Kind() engine.BodyKind { return b.Def.Kind }
func (b *Body) Position() geom.Vec2 { return b.Pos }
func (b *Body) Angle() float64 { return b.Ang }
func (b *Body) AngularVelocity() float64 { return b.Omega }
func (b *Body) LinearVelocity() geom.Vec2 { return b.Vel }

func (j *Joint) SetMotorSpeed(s float64) {
	j.Speed = s
	j.Speeds = append(j.Speeds, s)
}

func (j *Joint) MotorSpeed() float64 { return j.Speed }
func (j *Joint) MaxMotorTorque() float64 { return j.Def.MaxMotorTorque }

// Package chipmunk adapts github.com/jakecoffman/cp to engine.World.
//
// Chipmunk has no revolute-motor joint; a wheel joint is a PivotJoint
// paired with a SimpleMotor. Mass and moment are accumulated from the
// fixtures attached to each body.
package chipmunk

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/geom"
)

const Name = "chipmunk"

func init() {
	engine.Register(Name, func(gravity geom.Vec2) (engine.World, error) {
		return New(gravity), nil
	})
}

type World struct {
	space   *cp.Space
	gravity geom.Vec2
}

type body struct {
	b      *cp.Body
	kind   engine.BodyKind
	owner  *World
	shapes []*cp.Shape
	joints []*joint
	mass   float64
	moment float64
	dead   bool
}

type joint struct {
	pivot  *cp.Constraint
	motor  *cp.Constraint
	speed  float64
	torque float64
	dead   bool
}

func New(gravity geom.Vec2) *World {
	space := cp.NewSpace()
	space.SetGravity(vec(gravity))
	return &World{space: space, gravity: gravity}
}

func vec(v geom.Vec2) cp.Vector { return cp.Vector{X: v.X(), Y: v.Y()} }

func unvec(v cp.Vector) geom.Vec2 { return geom.V(v.X, v.Y) }

func (w *World) Gravity() geom.Vec2 { return w.gravity }

func (w *World) CreateBody(def engine.BodyDef) (engine.Body, error) {
	var b *cp.Body
	if def.Kind == engine.Static {
		b = cp.NewStaticBody()
	} else {
		b = cp.NewBody(1, 1)
	}
	b.SetPosition(vec(def.Position))
	w.space.AddBody(b)
	return &body{b: b, kind: def.Kind, owner: w}, nil
}

func (w *World) own(b engine.Body) (*body, error) {
	bb, ok := b.(*body)
	if !ok || bb.owner != w {
		return nil, engine.ErrForeignBody
	}
	if bb.dead {
		return nil, engine.ErrDestroyed
	}
	return bb, nil
}

func (w *World) DestroyBody(b engine.Body) error {
	bb, err := w.own(b)
	if err != nil {
		return err
	}
	for _, j := range bb.joints {
		w.removeJoint(j)
	}
	for _, s := range bb.shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(bb.b)
	bb.dead = true
	return nil
}

func (w *World) removeJoint(j *joint) {
	if j.dead {
		return
	}
	w.space.RemoveConstraint(j.pivot)
	w.space.RemoveConstraint(j.motor)
	j.dead = true
}

func (w *World) CreateRevoluteJoint(def engine.RevoluteJointDef) (engine.Joint, error) {
	a, err := w.own(def.A)
	if err != nil {
		return nil, fmt.Errorf("joint body A: %w", err)
	}
	b, err := w.own(def.B)
	if err != nil {
		return nil, fmt.Errorf("joint body B: %w", err)
	}

	pivot := w.space.AddConstraint(cp.NewPivotJoint(a.b, b.b, vec(def.Anchor)))
	pivot.SetCollideBodies(def.CollideConnected)

	j := &joint{pivot: pivot, torque: def.MaxMotorTorque}
	j.motor = w.space.AddConstraint(cp.NewSimpleMotor(a.b, b.b, 0))
	j.motor.SetCollideBodies(def.CollideConnected)
	if def.EnableMotor {
		j.motor.SetMaxForce(def.MaxMotorTorque)
	} else {
		j.motor.SetMaxForce(0)
	}
	j.SetMotorSpeed(def.MotorSpeed)

	a.joints = append(a.joints, j)
	b.joints = append(b.joints, j)
	return j, nil
}

func (w *World) Step(dt float64) { w.space.Step(dt) }

func (b *body) Attach(def engine.FixtureDef) error {
	if b.dead {
		return engine.ErrDestroyed
	}

	var (
		shape  *cp.Shape
		mass   float64
		moment float64
	)
	switch s := def.Shape.(type) {
	case engine.Edge:
		shape = cp.NewSegment(b.b, vec(s.A), vec(s.B), 0)
	case engine.Box:
		w, h := 2*s.HalfW, 2*s.HalfH
		shape = cp.NewBox(b.b, w, h, 0)
		mass = def.Density * w * h
		moment = cp.MomentForBox(mass, w, h)
	case engine.Circle:
		shape = cp.NewCircle(b.b, s.Radius, cp.Vector{})
		mass = def.Density * math.Pi * s.Radius * s.Radius
		moment = cp.MomentForCircle(mass, 0, s.Radius, cp.Vector{})
	default:
		return fmt.Errorf("%w: %T", engine.ErrUnsupportedShape, def.Shape)
	}

	shape.SetFriction(def.Friction)
	b.owner.space.AddShape(shape)
	b.shapes = append(b.shapes, shape)

	if b.kind == engine.Dynamic && mass > 0 {
		b.mass += mass
		b.moment += moment
		b.b.SetMass(b.mass)
		b.b.SetMoment(b.moment)
	}
	return nil
}

func (b *body) Kind() engine.BodyKind { return b.kind }
func (b *body) Position() geom.Vec2 { return unvec(b.b.Position()) }
func (b *body) Angle() float64 { return b.b.Angle() }
func (b *body) AngularVelocity() float64 { return b.b.AngularVelocity() }
func (b *body) LinearVelocity() geom.Vec2 { return unvec(b.b.Velocity()) }

// SetMotorSpeed stores the revolute-convention speed. SimpleMotor drives
// wB-wA toward -rate, hence the sign flip.
func (j *joint) SetMotorSpeed(s float64) {
	j.speed = s
	if m, ok := j.motor.Class.(*cp.SimpleMotor); ok {
		m.Rate = -s
	}
	j.motor.ActivateBodies()
}

func (j *joint) MotorSpeed() float64 { return j.speed }
func (j *joint) MaxMotorTorque() float64 { return j.torque }

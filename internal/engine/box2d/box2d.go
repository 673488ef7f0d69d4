// Package box2d adapts github.com/ByteArena/box2d to engine.World.
package box2d

import (
	"fmt"

	b2 "github.com/ByteArena/box2d"
	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/geom"
)

const (
	Name = "box2d"

	velocityIterations = 8
	positionIterations = 3
)

func init() {
	engine.Register(Name, func(gravity geom.Vec2) (engine.World, error) {
		return New(gravity), nil
	})
}

type World struct {
	w *b2.B2World
}

type body struct {
	b     *b2.B2Body
	owner *World
	dead  bool
}

type joint struct {
	j *b2.B2RevoluteJoint
}

func New(gravity geom.Vec2) *World {
	w := b2.MakeB2World(vec(gravity))
	return &World{w: &w}
}

func vec(v geom.Vec2) b2.B2Vec2 { return b2.MakeB2Vec2(v.X(), v.Y()) }

func unvec(v b2.B2Vec2) geom.Vec2 { return geom.V(v.X, v.Y) }

func (w *World) Gravity() geom.Vec2 { return unvec(w.w.GetGravity()) }

func (w *World) CreateBody(def engine.BodyDef) (engine.Body, error) {
	bd := b2.MakeB2BodyDef()
	bd.Position = vec(def.Position)
	switch def.Kind {
	case engine.Static:
		bd.Type = b2.B2BodyType.B2_staticBody
	default:
		bd.Type = b2.B2BodyType.B2_dynamicBody
	}
	return &body{b: w.w.CreateBody(&bd), owner: w}, nil
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

// DestroyBody also removes attached joints; box2d does this itself.
func (w *World) DestroyBody(b engine.Body) error {
	bb, err := w.own(b)
	if err != nil {
		return err
	}
	w.w.DestroyBody(bb.b)
	bb.dead = true
	return nil
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

	jd := b2.MakeB2RevoluteJointDef()
	jd.Initialize(a.b, b.b, vec(def.Anchor))
	jd.EnableMotor = def.EnableMotor
	jd.MotorSpeed = def.MotorSpeed
	jd.MaxMotorTorque = def.MaxMotorTorque
	jd.CollideConnected = def.CollideConnected

	rj, ok := w.w.CreateJoint(&jd).(*b2.B2RevoluteJoint)
	if !ok {
		return nil, fmt.Errorf("box2d: unexpected joint type")
	}
	return &joint{j: rj}, nil
}

func (w *World) Step(dt float64) {
	w.w.Step(dt, velocityIterations, positionIterations)
}

func (b *body) Attach(def engine.FixtureDef) error {
	if b.dead {
		return engine.ErrDestroyed
	}
	fd := b2.MakeB2FixtureDef()
	fd.Density = def.Density
	fd.Friction = def.Friction

	switch s := def.Shape.(type) {
	case engine.Edge:
		edge := b2.MakeB2EdgeShape()
		edge.Set(vec(s.A), vec(s.B))
		fd.Shape = &edge
	case engine.Box:
		poly := b2.MakeB2PolygonShape()
		poly.SetAsBox(s.HalfW, s.HalfH)
		fd.Shape = &poly
	case engine.Circle:
		circle := b2.MakeB2CircleShape()
		circle.M_radius = s.Radius
		fd.Shape = &circle
	default:
		return fmt.Errorf("%w: %T", engine.ErrUnsupportedShape, def.Shape)
	}

	b.b.CreateFixtureFromDef(&fd)
	return nil
}

func (b *body) Kind() engine.BodyKind {
	if b.b.GetType() == b2.B2BodyType.B2_staticBody {
		return engine.Static
	}
	return engine.Dynamic
}

func (b *body) Position() geom.Vec2 { return unvec(b.b.GetPosition()) }
func (b *body) Angle() float64 { return b.b.GetAngle() }
func (b *body) AngularVelocity() float64 { return b.b.GetAngularVelocity() }
func (b *body) LinearVelocity() geom.Vec2 { return unvec(b.b.GetLinearVelocity()) }
func (j *joint) SetMotorSpeed(s float64) { j.j.SetMotorSpeed(s) }
func (j *joint) MotorSpeed() float64 { return j.j.GetMotorSpeed() }
func (j *joint) MaxMotorTorque() float64 { return j.j.GetMaxMotorTorque() }

package engine

import "github.com/san-kum/rampsim/internal/geom"

type BodyKind uint8

const (
	Static BodyKind = iota
	Dynamic
)

func (k BodyKind) String() string {
	if k == Static {
		return "static"
	}
	return "dynamic"
}

// Shape is one of Edge, Box or Circle.
type Shape interface {
	shape()
}

// Edge is a two-sided line segment in body-local coordinates.
type Edge struct {
	A, B geom.Vec2
}

// Box is an axis-aligned rectangle centred on the body origin.
type Box struct {
	HalfW, HalfH float64
}

// Circle is centred on the body origin.
type Circle struct {
	Radius float64
}

func (Edge) shape()   {}
func (Box) shape()    {}
func (Circle) shape() {}

type FixtureDef struct {
	Shape    Shape
	Density  float64
	Friction float64
}

type BodyDef struct {
	Kind     BodyKind
	Position geom.Vec2
}

// RevoluteJointDef pins B to A at a world-space anchor.
type RevoluteJointDef struct {
	A, B             Body
	Anchor           geom.Vec2
	EnableMotor      bool
	MotorSpeed       float64
	MaxMotorTorque   float64
	CollideConnected bool
}

type Body interface {
	Attach(def FixtureDef) error
	Kind() BodyKind
	Position() geom.Vec2
	Angle() float64
	AngularVelocity() float64
	LinearVelocity() geom.Vec2
}

type Joint interface {
	SetMotorSpeed(speed float64)
	MotorSpeed() float64
	MaxMotorTorque() float64
}

// World owns every body and joint it creates. Destroying a body destroys
// the joints attached to it; handles are dead afterwards.
type World interface {
	CreateBody(def BodyDef) (Body, error)
	DestroyBody(b Body) error
	CreateRevoluteJoint(def RevoluteJointDef) (Joint, error)
	Step(dt float64)
	Gravity() geom.Vec2
}

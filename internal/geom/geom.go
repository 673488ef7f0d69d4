// Package geom holds the 2D vector type shared by the engine, terrain and
// rendering packages. World units are meters; the UI edits terrain in
// centimeters.
package geom

import "github.com/go-gl/mathgl/mgl64"

type Vec2 = mgl64.Vec2

const cmPerMeter = 100.0

func V(x, y float64) Vec2 { return Vec2{x, y} }

// FromCm converts centimeters to meters.
func FromCm(cm float64) float64 { return cm / cmPerMeter }

// ToCm converts meters to centimeters.
func ToCm(m float64) float64 { return m * cmPerMeter }

// Rotate turns v by angle radians counter-clockwise.
func Rotate(v Vec2, angle float64) Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

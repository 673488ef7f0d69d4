// Package render draws a Scene onto any Surface. Scene geometry is in world
// meters; surfaces receive screen pixels with y pointing down.
package render

import (
	"fmt"
	"strconv"

	"github.com/san-kum/rampsim/internal/geom"
)

type Color struct {
	R, G, B, A uint8
}

// Hex parses "#rgb" or "#rrggbb". It panics on malformed input and is meant
// for palette literals.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("render: bad color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("render: bad color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Surface is a pixel-space drawing target. FillPolygon only receives convex
// polygons.
type Surface interface {
	Size() (w, h float64)
	Clear(c Color)
	Line(a, b geom.Vec2, c Color, width float64)
	FillPolygon(pts []geom.Vec2, c Color)
	Circle(center geom.Vec2, r float64, fill, ring Color)
}

// SignedArea is the shoelace area of pts. With y pointing down it is
// negative for polygons that appear counter-clockwise on screen.
func SignedArea(pts []geom.Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}

// ScreenCCW returns pts ordered counter-clockwise on a y-down screen,
// copying only when the order has to flip.
func ScreenCCW(pts []geom.Vec2) []geom.Vec2 {
	if SignedArea(pts) <= 0 {
		return pts
	}
	out := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

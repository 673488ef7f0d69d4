// Package terrain builds the piecewise-linear ground the car drives on.
//
// The ground is a fixed sequence of stages: a flat run, a curb step, a short
// ramp, three user-editable segments and a final flat run. Editable segments
// are expressed in centimeters and converted to meters at build time.
package terrain

import (
	"math"

	"github.com/san-kum/rampsim/internal/geom"
)

const (
	FlatRun  = 5.0  // m
	CurbRise = 0.03 // m
	RampRun  = 0.5  // m
	RampRise = 0.02 // m

	// VertexCount is start + flat + curb + ramp + 3 segments + flat.
	VertexCount = 8

	DefaultFriction = 0.9
)

// Segment is a relative displacement appended to the running cursor.
type Segment struct {
	ID   string  `yaml:"id" json:"id"`
	DxCm float64 `yaml:"dx_cm" json:"dx_cm"`
	DyCm float64 `yaml:"dy_cm" json:"dy_cm"`
}

// Delta returns the displacement in meters; negative dx is clamped to zero.
func (s Segment) Delta() geom.Vec2 {
	return geom.V(geom.FromCm(math.Max(0, s.DxCm)), geom.FromCm(s.DyCm))
}

type Profile struct {
	StartX   float64    `yaml:"start_x" json:"start_x"`
	StartY   float64    `yaml:"start_y" json:"start_y"`
	Friction float64    `yaml:"friction" json:"friction"`
	Segments [3]Segment `yaml:"segments" json:"segments"`
}

func DefaultProfile() Profile {
	return Profile{
		Friction: DefaultFriction,
		Segments: [3]Segment{
			{ID: "3a", DxCm: 100, DyCm: -5},
			{ID: "3b", DxCm: 400, DyCm: -70},
			{ID: "3c", DxCm: 0, DyCm: 0},
		},
	}
}

func (p Profile) Start() geom.Vec2 { return geom.V(p.StartX, p.StartY) }

// Build returns the terrain polyline. It is a pure function of p: zero-length
// segments produce duplicate vertices and are kept.
func Build(p Profile) []geom.Vec2 {
	verts := make([]geom.Vec2, 0, VertexCount)
	cur := p.Start()
	verts = append(verts, cur)

	push := func(d geom.Vec2) {
		cur = cur.Add(d)
		verts = append(verts, cur)
	}

	push(geom.V(FlatRun, 0))
	push(geom.V(0, CurbRise))
	push(geom.V(RampRun, RampRise))
	for _, s := range p.Segments {
		push(s.Delta())
	}
	push(geom.V(FlatRun, 0))

	return verts
}

// HeightAt returns the ground height under x by linear interpolation along
// verts. Outside the polyline the nearest end height is used; on a vertical
// step the lower edge wins.
func HeightAt(verts []geom.Vec2, x float64) float64 {
	if len(verts) == 0 {
		return 0
	}
	if x <= verts[0].X() {
		return verts[0].Y()
	}
	for i := 1; i < len(verts); i++ {
		a, b := verts[i-1], verts[i]
		if x > b.X() || b.X() == a.X() {
			continue
		}
		t := (x - a.X()) / (b.X() - a.X())
		return a.Y() + t*(b.Y()-a.Y())
	}
	return verts[len(verts)-1].Y()
}

package render

import (
	"math"

	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/geom"
)

type Palette struct {
	Background  Color
	TerrainEdge Color
	TerrainFill Color
	ChassisFill Color
	ChassisEdge Color
	WheelFill   Color
	WheelRing   Color
	Spoke       Color
}

func DefaultPalette() Palette {
	return Palette{
		Background:  Hex("#f4f6fb"),
		TerrainEdge: Hex("#2f3d5b"),
		TerrainFill: Hex("#c7d7ff"),
		ChassisFill: Hex("#1ecf7c"),
		ChassisEdge: Hex("#0a7d45"),
		WheelFill:   Hex("#333"),
		WheelRing:   Hex("#666"),
		Spoke:       Hex("#bbb"),
	}
}

// Pose is a body position and its engine angle (counter-clockwise, y up).
type Pose struct {
	Pos   geom.Vec2
	Angle float64
}

type Scene struct {
	Terrain  []geom.Vec2
	Chassis  Pose
	ChassisW float64
	ChassisH float64
	Wheels   []Pose
	WheelR   float64
	Camera   *camera.Camera
}

type Renderer struct {
	Palette Palette
	// FillDepth is the world y the ground fill extends down to.
	FillDepth float64
	EdgeWidth float64
	Spokes    int
}

func New() *Renderer {
	return &Renderer{Palette: DefaultPalette(), FillDepth: -5, EdgeWidth: 3, Spokes: 4}
}

func (r *Renderer) Draw(s Surface, sc Scene) {
	s.Clear(r.Palette.Background)
	if sc.Camera == nil {
		return
	}
	r.drawTerrain(s, sc)
	if sc.ChassisW > 0 {
		r.drawChassis(s, sc)
	}
	for _, w := range sc.Wheels {
		r.drawWheel(s, sc.Camera, w, sc.WheelR)
	}
}

// The ground fill is emitted as one quad per edge so every polygon handed
// to the surface is convex. Vertical edges have no area and only get a line.
func (r *Renderer) drawTerrain(s Surface, sc Scene) {
	cam := sc.Camera
	verts := sc.Terrain
	for i := 1; i < len(verts); i++ {
		a, b := verts[i-1], verts[i]
		if b.X() == a.X() {
			continue
		}
		quad := []geom.Vec2{
			cam.WorldToScreen(a),
			cam.WorldToScreen(b),
			cam.WorldToScreen(geom.V(b.X(), r.FillDepth)),
			cam.WorldToScreen(geom.V(a.X(), r.FillDepth)),
		}
		s.FillPolygon(quad, r.Palette.TerrainFill)
	}
	for i := 1; i < len(verts); i++ {
		s.Line(cam.WorldToScreen(verts[i-1]), cam.WorldToScreen(verts[i]), r.Palette.TerrainEdge, r.EdgeWidth)
	}
}

// ChassisCorners returns the rectangle corners in screen space.
func ChassisCorners(cam *camera.Camera, p Pose, w, h float64) []geom.Vec2 {
	c := cam.WorldToScreen(p.Pos)
	hw, hh := w/2*cam.Scale(), h/2*cam.Scale()
	local := []geom.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	out := make([]geom.Vec2, len(local))
	for i, l := range local {
		out[i] = c.Add(geom.Rotate(l, -p.Angle))
	}
	return out
}

func (r *Renderer) drawChassis(s Surface, sc Scene) {
	pts := ChassisCorners(sc.Camera, sc.Chassis, sc.ChassisW, sc.ChassisH)
	s.FillPolygon(pts, r.Palette.ChassisFill)
	for i := range pts {
		s.Line(pts[i], pts[(i+1)%len(pts)], r.Palette.ChassisEdge, 2)
	}
}

// SpokeEnds returns the outer end of each spoke in screen space.
func SpokeEnds(cam *camera.Camera, p Pose, radius float64, n int) []geom.Vec2 {
	c := cam.WorldToScreen(p.Pos)
	rp := radius * cam.Scale()
	out := make([]geom.Vec2, n)
	for i := range out {
		a := float64(i)*2*math.Pi/float64(n) - p.Angle
		out[i] = c.Add(geom.V(math.Cos(a)*rp, math.Sin(a)*rp))
	}
	return out
}

func (r *Renderer) drawWheel(s Surface, cam *camera.Camera, p Pose, radius float64) {
	c := cam.WorldToScreen(p.Pos)
	s.Circle(c, radius*cam.Scale(), r.Palette.WheelFill, r.Palette.WheelRing)
	for _, end := range SpokeEnds(cam, p, radius, r.Spokes) {
		s.Line(c, end, r.Palette.Spoke, 2)
	}
}

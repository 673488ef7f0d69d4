package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/render"
)

// Surface draws onto the current raylib frame. Calls must happen between
// BeginDrawing and EndDrawing.
type Surface struct{}

func color(c render.Color) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func vec(p geom.Vec2) rl.Vector2 { return rl.NewVector2(float32(p.X()), float32(p.Y())) }

func (Surface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (Surface) Clear(c render.Color) { rl.ClearBackground(color(c)) }

func (Surface) Line(a, b geom.Vec2, c render.Color, width float64) {
	rl.DrawLineEx(vec(a), vec(b), float32(width), color(c))
}

// FillPolygon fans from the first vertex. raylib culls clockwise
// triangles, so the winding is normalized first.
func (Surface) FillPolygon(pts []geom.Vec2, c render.Color) {
	if len(pts) < 3 {
		return
	}
	pts = render.ScreenCCW(pts)
	fan := make([]rl.Vector2, len(pts))
	for i, p := range pts {
		fan[i] = vec(p)
	}
	rl.DrawTriangleFan(fan, color(c))
}

func (Surface) Circle(center geom.Vec2, r float64, fill, ring render.Color) {
	rl.DrawCircleV(vec(center), float32(r), color(fill))
	rl.DrawRing(vec(center), float32(r)-2, float32(r), 0, 360, 36, color(ring))
}

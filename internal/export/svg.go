// Package export writes scenes and traces as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/render"
)

// SVG is a render.Surface that accumulates SVG elements. The first Clear
// becomes the background rectangle; later clears drop what was drawn.
type SVG struct {
	W, H float64
	bg   string
	body strings.Builder
}

func NewSVG(w, h float64) *SVG {
	return &SVG{W: w, H: h}
}

func (s *SVG) Size() (float64, float64) { return s.W, s.H }

func (s *SVG) Clear(c render.Color) {
	s.body.Reset()
	s.bg = c.String()
}

func (s *SVG) Line(a, b geom.Vec2, c render.Color, width float64) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" %s stroke-width="%.1f" stroke-linecap="round"/>`+"\n",
		a.X(), a.Y(), b.X(), b.Y(), paint("stroke", c), width)
}

func (s *SVG) FillPolygon(pts []geom.Vec2, c render.Color) {
	if len(pts) < 3 {
		return
	}
	fmt.Fprintf(&s.body, `<polygon points="%s" %s/>`+"\n", pointList(pts), paint("fill", c))
}

func (s *SVG) Circle(center geom.Vec2, r float64, f, ring render.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" %s %s stroke-width="2"/>`+"\n",
		center.X(), center.Y(), r, paint("fill", f), paint("stroke", ring))
}

// WriteTo emits the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.W, s.H, s.W, s.H)
	if s.bg != "" {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.bg)
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (s *SVG) String() string {
	var sb strings.Builder
	s.WriteTo(&sb)
	return sb.String()
}

// Snapshot renders sc at the camera's viewport size.
func Snapshot(w io.Writer, r *render.Renderer, sc render.Scene) error {
	width, height := 1280.0, 720.0
	if sc.Camera != nil {
		vp := sc.Camera.Viewport()
		width, height = vp.W, vp.H
	}
	svg := NewSVG(width, height)
	r.Draw(svg, sc)
	if _, err := svg.WriteTo(w); err != nil {
		return fmt.Errorf("export: write snapshot: %w", err)
	}
	return nil
}

// paint renders a colour attribute, adding <attr>-opacity for translucent
// colours.
func paint(attr string, c render.Color) string {
	if c.A == 0xff {
		return fmt.Sprintf(`%s="%s"`, attr, c)
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%.2f"`, attr, c, attr, float64(c.A)/255)
}

func pointList(pts []geom.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X(), p.Y())
	}
	return strings.Join(parts, " ")
}

// TrajectoryToSVG plots a world-space path (y up) fitted to width x height
// with 10% padding.
func TrajectoryToSVG(points []geom.Vec2, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X(), points[0].X()
	minY, maxY := points[0].Y(), points[0].Y()
	for _, p := range points {
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#f4f6fb"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X() - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y()-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

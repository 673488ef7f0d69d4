package terrain

import (
	"fmt"
	"strconv"

	"github.com/san-kum/rampsim/internal/geom"
)

// Labels describe each vertex produced by Build.
var Labels = [VertexCount]string{
	"0. Start",
	"1. After 1) 5m flat",
	"2. After 2a) +3cm curb",
	"3. After 2b) +10cm / 50cm",
	"4. After 3a)",
	"5. After 3b)",
	"6. After 3c)",
	"7. After 4) 5m flat",
}

func fmtCm(m float64) string {
	return strconv.FormatFloat(geom.ToCm(m), 'f', 1, 64)
}

// PanelLines lists every vertex in centimeters with its label.
func PanelLines(verts []geom.Vec2) []string {
	lines := make([]string, len(verts))
	for i, v := range verts {
		label := fmt.Sprintf("%d. Point", i)
		if i < len(Labels) {
			label = Labels[i]
		}
		lines[i] = fmt.Sprintf("%s: x=%s, y=%s", label, fmtCm(v.X()), fmtCm(v.Y()))
	}
	return lines
}

// Endpoint is a read-only coordinate pair reported to the UI, in centimeters
// with one decimal.
type Endpoint struct {
	X, Y string
}

// Endpoints reports the ends of segments 3a and 3b. ok is false when verts
// is too short to contain them.
func Endpoints(verts []geom.Vec2) (a, b Endpoint, ok bool) {
	if len(verts) < 6 {
		return Endpoint{}, Endpoint{}, false
	}
	a = Endpoint{X: fmtCm(verts[4].X()), Y: fmtCm(verts[4].Y())}
	b = Endpoint{X: fmtCm(verts[5].X()), Y: fmtCm(verts[5].Y())}
	return a, b, true
}

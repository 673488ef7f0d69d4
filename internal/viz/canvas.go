package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rampsim/internal/geom"
	"github.com/san-kum/rampsim/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid. Each cell remembers the colour of the last
// dot drawn into it. It implements render.Surface in dot coordinates.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]render.Color
}

var _ render.Surface = (*Canvas)(nil)

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]render.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]render.Color, w)
	}
	c.Clear(render.Color{})
	return c
}

// Set turns on the dot at (x, y). The canvas is Width*2 by Height*4 dots.
func (c *Canvas) Set(x, y int) {
	c.set(x, y, render.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

func (c *Canvas) set(x, y int, col render.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= rune(pixelMap[y%4][x%2])
	c.Colors[cy][cx] = col
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width * 2), float64(c.Height * 4)
}

// Clear empties the grid. Background colour is left to the terminal.
func (c *Canvas) Clear(render.Color) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = render.Color{}
		}
	}
}

func (c *Canvas) Line(a, b geom.Vec2, col render.Color, _ float64) {
	c.drawLine(round(a.X()), round(a.Y()), round(b.X()), round(b.Y()), col)
}

// drawLine is Bresenham's algorithm.
func (c *Canvas) drawLine(x0, y0, x1, y1 int, col render.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillPolygon shades a convex polygon with a checkerboard of dots so filled
// areas stay distinguishable from outlines.
func (c *Canvas) FillPolygon(pts []geom.Vec2, col render.Color) {
	if len(pts) < 3 {
		return
	}
	_, hDots := c.Size()
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minY = math.Min(minY, p.Y())
		maxY = math.Max(maxY, p.Y())
	}
	y0 := max(0, int(math.Ceil(minY-0.5)))
	y1 := min(int(hDots)-1, int(math.Floor(maxY-0.5)))

	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y() <= yc) == (b.Y() <= yc) {
				continue
			}
			x := a.X() + (yc-a.Y())/(b.Y()-a.Y())*(b.X()-a.X())
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
		if lo > hi {
			continue
		}
		for x := int(math.Ceil(lo - 0.5)); x <= int(math.Floor(hi-0.5)); x++ {
			if (x+y)%2 == 0 {
				c.set(x, y, col)
			}
		}
	}
}

// Circle draws the ring only; a solid braille disc would hide the spokes.
func (c *Canvas) Circle(center geom.Vec2, r float64, _, ring render.Color) {
	n := max(8, int(2*math.Pi*r))
	prev := center.Add(geom.V(r, 0))
	for i := 1; i <= n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		p := center.Add(geom.V(r*math.Cos(a), r*math.Sin(a)))
		c.Line(prev, p, ring, 1)
		prev = p
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of same-coloured cells styled by lipgloss.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			col := c.Colors[i][start]
			if col.A == 0 {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col.String())).Render(run))
			}
			start = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

func round(v float64) int { return int(math.Round(v)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

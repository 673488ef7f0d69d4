package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/render"
	"github.com/san-kum/rampsim/internal/sim"
	"github.com/san-kum/rampsim/internal/terrain"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 46
	historyCapacity = 600

	// TerminalScale is braille dots per meter. An 80 column canvas shows
	// 20 m of track.
	TerminalScale = 8.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live terminal view of one simulation.
type Model struct {
	ctx      *sim.Context
	renderer *render.Renderer
	canvas   *Canvas
	theme    Theme
	styles   styles
	hold     *control.HoldRelease
	timer    sim.FrameTimer

	frame        sim.Frame
	speedHistory []float64
	pitchHistory []float64
	paused       bool
	showHelp     bool

	field   int
	editing bool
	editBuf string
	status  string

	width, height int
}

// NewModel wraps ctx. The camera viewport is resized to the canvas, in
// braille dots.
func NewModel(ctx *sim.Context) Model {
	m := Model{
		ctx:          ctx,
		renderer:     render.New(),
		hold:         control.NewHoldRelease(control.DefaultHoldWindow),
		speedHistory: make([]float64, 0, historyCapacity),
		pitchHistory: make([]float64, 0, historyCapacity),
	}
	m.setTheme(Themes[0])
	m.resize(defaultWidth, defaultHeight)
	m.frame = ctx.Snapshot()
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = newStyles(t)
	m.renderer.Palette = t.Palette
}

func (m *Model) resize(w, h int) {
	m.width, m.height = max(w, 20), max(h, 8)
	m.canvas = NewCanvas(m.width, m.height)
	dw, dh := m.canvas.Size()
	m.ctx.Resize(camera.Viewport{W: dw, H: dh})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width-panelWidth-4, msg.Height-3)
	case tea.KeyMsg:
		if m.editing {
			m.editKey(msg)
			return m, nil
		}
		return m.handleKey(msg)
	case TickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		m.paused = !m.paused
	case "t":
		m.setTheme(NextTheme(m.theme.Name))
	case "?":
		m.showHelp = !m.showHelp
	case "tab":
		m.field = (m.field + 1) % terrain.FieldCount
	case "shift+tab":
		m.field = (m.field + terrain.FieldCount - 1) % terrain.FieldCount
	case "up", "k":
		m.nudge(1)
	case "down", "j":
		m.nudge(-1)
	case "enter", "e":
		m.editing = true
		m.editBuf = m.ctx.Terrain.Profile().Fields()[m.field]
	default:
		m.press(control.ParseKey(key))
	}
	return m, nil
}

// press forwards a drive key. Terminals repeat instead of reporting key-up,
// so only the first press of a hold reaches the control state and the
// release is synthesised on tick.
func (m *Model) press(k control.Key) {
	switch k {
	case control.KeyNone:
		return
	case control.KeyReset:
		m.report(m.ctx.HandleKey(k, true))
		return
	}
	if m.hold.Hit(k, time.Now()) {
		m.report(m.ctx.HandleKey(k, true))
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m *Model) nudge(dir float64) {
	m.report(m.ctx.EditTerrain(m.ctx.Terrain.Profile().Nudged(m.field, dir)))
}

func (m *Model) editKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		fields := m.ctx.Terrain.Profile().Fields()
		fields[m.field] = m.editBuf
		m.report(m.ctx.EditTerrain(fields))
		m.editing, m.editBuf = false, ""
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.editBuf += string(msg.Runes)
		}
	}
}

func (m *Model) step(now time.Time) {
	for _, k := range m.hold.Expired(now) {
		m.report(m.ctx.HandleKey(k, false))
	}
	dt := m.timer.Tick(now)
	if m.paused {
		return
	}
	m.frame = m.ctx.Frame(dt)
	if m.frame.Steps == 0 {
		return
	}
	m.speedHistory = appendCapped(m.speedHistory, m.frame.Speed())
	m.pitchHistory = appendCapped(m.pitchHistory, m.frame.Chassis.Angle)
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m Model) View() string {
	m.renderer.Draw(m.canvas, m.ctx.Scene())
	canvasView := m.styles.canvas.Render(m.canvas.Render())

	st := m.styles
	f := m.frame
	var s strings.Builder
	s.WriteString(st.header.Render("RAMPSIM") + "\n")
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(st.value.Render(status) + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("speed m/s"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", f.Time))
	row("Position", fmt.Sprintf("x=%.2f y=%.2f", f.Chassis.X, f.Chassis.Y))
	row("Speed", fmt.Sprintf("%.2f m/s", f.Speed()))
	row("Pitch", fmt.Sprintf("%+.1f°", f.Chassis.Angle*180/math.Pi))
	if base := m.ctx.Gains.BaseSpeed; base > 0 {
		row("Motor", Gauge(-f.Rear.MotorSpeed/base, 20))
	}
	brake := "off"
	if f.Control.Braking {
		brake = "ON"
	}
	row("Brake", brake)
	row("Trend", Sparkline(m.pitchHistory, 24))

	s.WriteString("\n" + st.header.Render("TERRAIN"))
	for _, line := range terrain.PanelLines(m.ctx.Terrain.Vertices()) {
		s.WriteString("\n" + st.label.UnsetWidth().Render(line))
	}
	s.WriteString("\n\n")
	fields := m.ctx.Terrain.Profile().Fields()
	for i, name := range terrain.FieldNames {
		val := fields[i]
		if m.editing && i == m.field {
			val = m.editBuf + "_"
		}
		line := fmt.Sprintf("%-6s %8s cm", name, val)
		if i == m.field {
			s.WriteString(st.active.Render("▸ "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	if a, b, ok := terrain.Endpoints(m.ctx.Terrain.Vertices()); ok {
		s.WriteString(st.label.UnsetWidth().Render(fmt.Sprintf("3a end (%s, %s)  3b end (%s, %s)", a.X, a.Y, b.X, b.Y)) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + st.warning.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("←/→ drive  SP brake  R reset  P pause\nTab field  ↑/↓ nudge  E edit  T theme  ? help  Q quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  → / ←     throttle forward / reverse (hold)
  Space     brake (hold)
  R         rebuild the car at the start
  P         pause
  Tab       select terrain field
  ↑ / ↓     nudge field (dx 10 cm, dy 5 cm)
  E, Enter  type a value, Enter applies, Esc cancels
  T         cycle theme
  Q         quit
`

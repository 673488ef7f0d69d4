// Package gui is the raylib window front end. It owns one sim.Context and
// drives it from the window's frame clock.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/render"
	"github.com/san-kum/rampsim/internal/sim"
	"github.com/san-kum/rampsim/internal/terrain"
	"go.uber.org/zap"
)

var (
	ColPanel   = rl.NewColor(255, 255, 255, 215)
	ColAccent  = rl.NewColor(30, 207, 124, 255)
	ColSelect  = rl.NewColor(47, 61, 91, 255)
	ColText    = rl.NewColor(60, 60, 60, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
	ColError   = rl.NewColor(200, 40, 40, 255)
)

const (
	maxTelemetry = 200
	panelX       = 20
	panelY       = 20
)

// bindings map window keys onto drive keys. Edges are reported by raylib,
// so every press has a matching release.
var bindings = []struct {
	code int32
	key  control.Key
}{
	{rl.KeyRight, control.KeyForward},
	{rl.KeyLeft, control.KeyReverse},
	{rl.KeySpace, control.KeyBrake},
	{rl.KeyR, control.KeyReset},
}

type App struct {
	ctx       *sim.Context
	renderer  *render.Renderer
	surface   Surface
	log       *zap.Logger
	telemetry []float64
	frame     sim.Frame
	field     int
	paused    bool
	status    string
}

func NewApp(ctx *sim.Context, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:       ctx,
		renderer:  render.New(),
		log:       log,
		telemetry: make([]float64, 0, maxTelemetry),
		frame:     ctx.Snapshot(),
	}
}

func initWindow(vp camera.Viewport) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(vp.W), int32(vp.H), "rampsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens a window sized to the context's viewport and blocks until it
// is closed.
func Run(ctx *sim.Context, log *zap.Logger) error {
	initWindow(ctx.Camera.Viewport())
	defer rl.CloseWindow()
	NewApp(ctx, log).RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.ctx.Resize(camera.Viewport{W: float64(rl.GetScreenWidth()), H: float64(rl.GetScreenHeight())})
	}
	for _, b := range bindings {
		if rl.IsKeyPressed(b.code) {
			a.report(a.ctx.HandleKey(b.key, true))
		}
		if rl.IsKeyReleased(b.code) {
			a.report(a.ctx.HandleKey(b.key, false))
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyP):
		a.paused = !a.paused
	case rl.IsKeyPressed(rl.KeyTab):
		a.field = (a.field + 1) % terrain.FieldCount
	case rl.IsKeyPressed(rl.KeyUp):
		a.nudge(1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.nudge(-1)
	}
	if a.paused {
		return
	}
	a.frame = a.ctx.Frame(float64(rl.GetFrameTime()))
	a.telemetry = append(a.telemetry, a.frame.Speed())
	if len(a.telemetry) > maxTelemetry {
		a.telemetry = a.telemetry[1:]
	}
}

func (a *App) nudge(dir float64) {
	a.report(a.ctx.EditTerrain(a.ctx.Terrain.Profile().Nudged(a.field, dir)))
}

func (a *App) report(err error) {
	if err != nil {
		a.log.Warn("input rejected", zap.Error(err))
		a.status = err.Error()
		return
	}
	a.status = ""
}

func (a *App) Draw() {
	rl.BeginDrawing()
	a.renderer.Draw(a.surface, a.ctx.Scene())
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawRectangle(panelX-10, panelY-10, 300, 330, ColPanel)
	rl.DrawText("rampsim", panelX, panelY, 24, ColSelect)

	y := int32(panelY + 34)
	line := func(s string, c rl.Color) {
		rl.DrawText(s, panelX, y, 16, c)
		y += 20
	}
	f := a.frame
	line(fmt.Sprintf("t %.2fs  x %.2fm  v %.2fm/s", f.Time, f.Chassis.X, f.Speed()), ColText)
	line(fmt.Sprintf("rear %+.1f  front %+.1f rad/s", f.Rear.MotorSpeed, f.Front.MotorSpeed), ColText)
	for _, l := range terrain.PanelLines(a.ctx.Terrain.Vertices()) {
		line(l, ColTextDim)
	}
	fields := a.ctx.Terrain.Profile().Fields()
	for i, name := range terrain.FieldNames {
		c := ColTextDim
		if i == a.field {
			c = ColSelect
		}
		line(fmt.Sprintf("%-6s %8s cm", name, fields[i]), c)
	}
	if a.status != "" {
		line(a.status, ColError)
	}

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if a.paused {
		status = "PAUSED"
		col = ColTextDim
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawText(status, w-130, 30, 16, col)
	rl.DrawText("[<-/->] DRIVE  [SPACE] BRAKE  [R] RESET  [P] PAUSE  [TAB/UP/DOWN] TERRAIN", 30, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-130, h-30, 14, ColTextDim)
}

// DrawTelemetry plots recent speed as a normalized line strip.
func (a *App) DrawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}
	rectX, rectY := float32(30), float32(rl.GetScreenHeight()-110)
	width, height := float32(400), float32(60)

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := rectX + float32(i)/float32(len(a.telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		points[i] = rl.NewVector2(px, rectY+height-float32(norm)*height)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("v: %.2f m/s", a.telemetry[len(a.telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, ColText)
}

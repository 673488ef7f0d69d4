package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/engine/enginetest"
	"github.com/san-kum/rampsim/internal/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopAdvance(t *testing.T) {
	tests := []struct {
		name    string
		frameDt float64
		steps   int
	}{
		{"long frame is clamped", 0.2, 3},
		{"exact step", 1.0 / 60, 1},
		{"short frame accumulates", 0.01, 0},
		{"negative frame", -1, 0},
		{"nan frame", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoop(0, 0)
			var dts []float64
			n := l.Advance(tt.frameDt, func(dt float64) { dts = append(dts, dt) })
			if n != tt.steps || len(dts) != tt.steps {
				t.Fatalf("steps = %d (%d calls), want %d", n, len(dts), tt.steps)
			}
			for _, dt := range dts {
				if dt != DefaultFixedDt {
					t.Errorf("step dt = %v", dt)
				}
			}
			if l.Remainder() < 0 || l.Remainder() >= l.FixedDt {
				t.Errorf("remainder %v out of range", l.Remainder())
			}
		})
	}
}

func TestLoopKeepsRemainder(t *testing.T) {
	l := NewLoop(0, 0)
	noop := func(float64) {}
	assert.Equal(t, 0, l.Advance(0.01, noop))
	assert.Equal(t, 1, l.Advance(0.01, noop))
	assert.InDelta(t, 0.02-1.0/60, l.Remainder(), 1e-12)
}

func TestFrameTimer(t *testing.T) {
	var ft FrameTimer
	t0 := time.Unix(100, 0)
	assert.Equal(t, 0.0, ft.Tick(t0))
	assert.InDelta(t, 0.25, ft.Tick(t0.Add(250*time.Millisecond)), 1e-12)
}

func newTestContext(t *testing.T) (*Context, *enginetest.World) {
	t.Helper()
	opts := DefaultOptions()
	opts.Viewport = camera.Viewport{W: 1000, H: 600}
	w := enginetest.New()
	c, err := NewContext(opts, w)
	require.NoError(t, err)
	return c, w
}

func TestNewContext(t *testing.T) {
	c, w := newTestContext(t)
	assert.Len(t, w.Live(engine.Static), 1)
	assert.Len(t, w.Live(engine.Dynamic), 3)
	assert.Len(t, w.Joints, 2)
	assert.Equal(t, 0.0, c.Camera.X)
	assert.InDelta(t, -2.4, c.Camera.Y, 1e-12)
}

func TestFrame_DrivesThenSteps(t *testing.T) {
	c, w := newTestContext(t)
	var seen []Frame
	c.AddObserver(ObserverFunc(func(f Frame) { seen = append(seen, f) }))

	require.NoError(t, c.HandleKey(control.KeyForward, true))
	f := c.Frame(0.2)

	assert.Equal(t, 3, f.Steps)
	assert.Equal(t, 3, w.Steps)
	assert.InDelta(t, 3.0/60, f.Time, 1e-12)
	for _, j := range w.Joints {
		assert.Equal(t, []float64{-12}, j.Speeds, "one command per frame")
	}
	assert.Equal(t, -12.0, f.Rear.MotorSpeed)
	require.Len(t, seen, 1)
	assert.Equal(t, f, seen[0])
}

func TestFrame_CameraFollows(t *testing.T) {
	c, _ := newTestContext(t)
	c.Vehicle.Chassis.(*enginetest.Body).Pos = [2]float64{20, 0.4}
	f := c.Frame(1.0 / 60)
	assert.InDelta(t, 13.5, f.Camera.X, 1e-12)
	assert.InDelta(t, 20.0, f.Chassis.X, 1e-12)
}

func TestFrame_Braking(t *testing.T) {
	c, w := newTestContext(t)
	c.Vehicle.Rear.Body.(*enginetest.Body).Omega = -10
	require.NoError(t, c.HandleKey(control.KeyBrake, true))
	c.Frame(0)
	assert.Equal(t, 20.0, w.Joints[0].Speed)
	assert.Equal(t, 0.0, w.Joints[1].Speed)
}

func TestResetVehicle(t *testing.T) {
	c, w := newTestContext(t)
	old := c.Vehicle.Chassis
	c.Vehicle.Chassis.(*enginetest.Body).Pos = [2]float64{30, 0.4}
	c.Frame(1.0 / 60)
	require.Greater(t, c.Camera.X, 0.0)

	require.NoError(t, c.HandleKey(control.KeyReset, true))

	require.Len(t, w.Destroyed, 3)
	assert.Equal(t, old, engine.Body(w.Destroyed[0]))
	assert.Len(t, w.Live(engine.Static), 1)
	assert.Len(t, w.Live(engine.Dynamic), 3)
	assert.Len(t, w.Joints, 2)
	assert.Equal(t, 0.0, c.Camera.X)
	assert.Equal(t, 2.0, c.Vehicle.Chassis.Position().X())
}

func TestEditTerrain(t *testing.T) {
	c, w := newTestContext(t)
	before := c.Terrain.Vertices()

	err := c.EditTerrain([6]string{"100", "-5", "abc", "-70", "0", "0"})
	assert.ErrorIs(t, err, terrain.ErrInvalidEdit)
	assert.Equal(t, before, c.Terrain.Vertices())
	assert.Empty(t, w.Destroyed)

	require.NoError(t, c.EditTerrain([6]string{"100", "-5", "300", "-50", "50", "10"}))
	after := c.Terrain.Vertices()
	assert.InDelta(t, 9.5, after[5].X(), 1e-12)
	assert.Len(t, w.Live(engine.Static), 1)
}

func TestScene(t *testing.T) {
	c, _ := newTestContext(t)
	sc := c.Scene()
	assert.Len(t, sc.Terrain, terrain.VertexCount)
	assert.Len(t, sc.Wheels, 2)
	assert.Equal(t, 4.2, sc.ChassisW)
	assert.Same(t, c.Camera, sc.Camera)
}

type frameCount struct{ n int }

func (m *frameCount) Name() string   { return "frames" }
func (m *frameCount) Observe(Frame)  { m.n++ }
func (m *frameCount) Value() float64 { return float64(m.n) }
func (m *frameCount) Reset()         { m.n = 0 }

func TestRunScript(t *testing.T) {
	c, w := newTestContext(t)
	m := &frameCount{n: 7}
	res, err := RunScript(context.Background(), c, control.DefaultScript(), 1.0, 1.0/60, m)
	require.NoError(t, err)

	assert.Len(t, res.Frames, 60)
	assert.Equal(t, 60, res.Steps)
	assert.Equal(t, 60, w.Steps)
	assert.Equal(t, 60.0, res.Metrics["frames"])

	assert.Equal(t, 0, res.Frames[0].Control.Throttle)
	last := res.Frames[len(res.Frames)-1]
	assert.Equal(t, 1, last.Control.Throttle)
}

func TestRunScript_Invalid(t *testing.T) {
	c, _ := newTestContext(t)
	_, err := RunScript(context.Background(), c, control.DefaultScript(), 0, 0.1)
	assert.ErrorIs(t, err, ErrInvalidRun)
	_, err = RunScript(context.Background(), c, control.DefaultScript(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidRun)

	bad := control.Script{Events: []control.Event{{At: 0, Key: "Tab", Down: true}}}
	_, err = RunScript(context.Background(), c, bad, 1, 0.1)
	assert.ErrorIs(t, err, control.ErrBadScript)
}

func TestRunScript_Cancelled(t *testing.T) {
	c, _ := newTestContext(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := RunScript(ctx, c, control.DefaultScript(), 1, 0.1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Frames)
}

func TestBatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Viewport = camera.Viewport{W: 800, H: 600}
	open := func(Job) (engine.World, error) { return enginetest.New(), nil }

	jobs := []Job{
		{Name: "a", Options: opts, Script: control.DefaultScript(), Duration: 0.5, FrameDt: 0.05},
		{Name: "b", Options: opts, Script: control.DefaultScript(), Duration: 1.0, FrameDt: 0.05},
		{Name: "c", Options: opts, Script: control.Script{}, Duration: 0.25, FrameDt: 0.05,
			Metrics: func() []Metric { return []Metric{&frameCount{}} }},
	}
	results, err := Batch(context.Background(), open, jobs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Script)
	assert.Len(t, results[1].Frames, 20)
	assert.Equal(t, 5.0, results[2].Metrics["frames"])
}

func TestBatch_OpenFailure(t *testing.T) {
	boom := errors.New("no engine")
	open := func(Job) (engine.World, error) { return nil, boom }
	_, err := Batch(context.Background(), open, []Job{{Name: "x", Options: DefaultOptions(), Duration: 1, FrameDt: 0.1}}, 0)
	assert.ErrorIs(t, err, boom)
}

package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/rampsim/internal/camera"
	"github.com/san-kum/rampsim/internal/config"
	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/engine"
	"github.com/san-kum/rampsim/internal/render"
	"github.com/san-kum/rampsim/internal/terrain"
	"github.com/san-kum/rampsim/internal/vehicle"
	"go.uber.org/zap"
)

var ErrNoVehicle = errors.New("sim: vehicle not built")

type Options struct {
	Terrain  terrain.Profile
	Vehicle  vehicle.Spec
	Camera   camera.Config
	Viewport camera.Viewport
	Gains    control.Gains
	FixedDt  float64
	MaxFrame float64
	Logger   *zap.Logger
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Terrain:  cfg.Terrain,
		Vehicle:  cfg.Vehicle,
		Camera:   cfg.Camera,
		Viewport: cfg.Viewport,
		Gains:    cfg.Control,
		FixedDt:  cfg.Loop.FixedDt,
		MaxFrame: cfg.Loop.MaxFrame,
	}
}

// Context holds everything one simulation needs. It is not safe for
// concurrent use; each frontend drives its Context from a single goroutine.
type Context struct {
	World   engine.World
	Terrain *terrain.Terrain
	Vehicle *vehicle.Vehicle
	Camera  *camera.Camera
	Control control.State
	Gains   control.Gains
	Loop    *Loop

	time      float64
	steps     int
	observers []Observer
	log       *zap.Logger
}

// NewContext builds the ground, the car and the camera in w.
func NewContext(opts Options, w engine.World) (*Context, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{
		World:   w,
		Terrain: terrain.New(opts.Terrain, log),
		Camera:  camera.New(opts.Camera, opts.Viewport),
		Gains:   opts.Gains,
		Loop:    NewLoop(opts.FixedDt, opts.MaxFrame),
		log:     log,
	}
	if err := c.Terrain.Apply(w); err != nil {
		return nil, err
	}
	v, err := vehicle.Replace(w, nil, opts.Vehicle, log)
	if err != nil {
		return nil, err
	}
	c.Vehicle = v
	c.Camera.Update(v.Chassis.Position().X())
	return c, nil
}

func (c *Context) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// Time is simulated seconds, advanced in fixed steps.
func (c *Context) Time() float64 { return c.time }

// Steps is the total number of physics steps taken.
func (c *Context) Steps() int { return c.steps }

// Frame runs one rendered frame: motor commands are applied once, the world
// steps as many times as the accumulator allows, then the camera follows.
func (c *Context) Frame(frameDt float64) Frame {
	control.Drive(c.Control, c.Gains, c.Vehicle.Wheels()...)

	n := c.Loop.Advance(frameDt, func(dt float64) {
		c.World.Step(dt)
		c.time += dt
	})
	c.steps += n

	if c.Vehicle.Chassis != nil {
		c.Camera.Update(c.Vehicle.Chassis.Position().X())
	}

	f := c.Snapshot()
	f.Steps = n
	for _, o := range c.observers {
		o.OnFrame(f)
	}
	return f
}

// Snapshot reports current state without stepping. Steps is left zero.
func (c *Context) Snapshot() Frame {
	f := Frame{
		Time:    c.time,
		Camera:  CameraFrame{X: c.Camera.X, Y: c.Camera.Y},
		Control: c.Control,
	}
	v := c.Vehicle
	if v.Chassis == nil {
		return f
	}
	p := v.Chassis.Position()
	vel := v.Chassis.LinearVelocity()
	f.Chassis = Pose{X: p.X(), Y: p.Y(), Angle: v.Chassis.Angle()}
	f.VX, f.VY = vel.X(), vel.Y()
	f.Rear = wheelFrame(v.Rear)
	f.Front = wheelFrame(v.Front)
	return f
}

func wheelFrame(w control.Wheel) WheelFrame {
	if w.Body == nil {
		return WheelFrame{}
	}
	p := w.Body.Position()
	return WheelFrame{
		Pose:       Pose{X: p.X(), Y: p.Y(), Angle: w.Body.Angle()},
		Omega:      w.Body.AngularVelocity(),
		MotorSpeed: w.Joint.MotorSpeed(),
	}
}

// HandleKey feeds a key transition into the control state. The reset key
// rebuilds the car before returning.
func (c *Context) HandleKey(k control.Key, down bool) error {
	if !down {
		c.Control.Release(k)
		return nil
	}
	if c.Control.Press(k) {
		return c.ResetVehicle()
	}
	return nil
}

// HandleKeyName accepts browser key codes and terminal names. Unknown keys
// are ignored.
func (c *Context) HandleKeyName(name string, down bool) error {
	return c.HandleKey(control.ParseKey(name), down)
}

// ResetVehicle destroys the car and builds a new one at the start pose,
// then re-initialises the camera.
func (c *Context) ResetVehicle() error {
	v, err := vehicle.Replace(c.World, c.Vehicle, c.Vehicle.Spec(), c.log)
	if err != nil {
		return err
	}
	c.Vehicle = v
	if v.Chassis == nil {
		return ErrNoVehicle
	}
	c.Camera.Follow(v.Chassis.Position().X())
	c.log.Debug("vehicle reset", zap.Float64("t", c.time), zap.Float64("camera_x", c.Camera.X))
	return nil
}

// EditTerrain applies six raw field values (3a.dx, 3a.dy, 3b.dx, 3b.dy,
// 3c.dx, 3c.dy in cm). An invalid batch leaves the ground untouched.
func (c *Context) EditTerrain(fields [terrain.FieldCount]string) error {
	if err := c.Terrain.Edit(c.World, fields); err != nil {
		return fmt.Errorf("sim: edit terrain: %w", err)
	}
	return nil
}

func (c *Context) SetTerrain(p terrain.Profile) error {
	return c.Terrain.SetProfile(c.World, p)
}

func (c *Context) Resize(vp camera.Viewport) {
	c.Camera.Resize(vp)
}

// Scene captures what a Renderer needs for the current frame.
func (c *Context) Scene() render.Scene {
	spec := c.Vehicle.Spec()
	sc := render.Scene{
		Terrain:  c.Terrain.Vertices(),
		ChassisW: spec.ChassisW,
		ChassisH: spec.ChassisH,
		WheelR:   spec.WheelR,
		Camera:   c.Camera,
	}
	v := c.Vehicle
	if v.Chassis == nil {
		sc.ChassisW = 0
		return sc
	}
	sc.Chassis = render.Pose{Pos: v.Chassis.Position(), Angle: v.Chassis.Angle()}
	for _, w := range v.Wheels() {
		sc.Wheels = append(sc.Wheels, render.Pose{Pos: w.Body.Position(), Angle: w.Body.Angle()})
	}
	return sc
}

package sim

import (
	"math"

	"github.com/san-kum/rampsim/internal/control"
)

// Pose is a body position in meters and its angle in radians (y up).
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

type WheelFrame struct {
	Pose
	Omega      float64 `json:"omega"`
	MotorSpeed float64 `json:"motor_speed"`
}

type CameraFrame struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is the state after one rendered frame.
type Frame struct {
	Time    float64       `json:"t"`
	Steps   int           `json:"steps"`
	Chassis Pose          `json:"chassis"`
	VX      float64       `json:"vx"`
	VY      float64       `json:"vy"`
	Rear    WheelFrame    `json:"rear"`
	Front   WheelFrame    `json:"front"`
	Camera  CameraFrame   `json:"camera"`
	Control control.State `json:"control"`
}

func (f Frame) Speed() float64 { return math.Hypot(f.VX, f.VY) }

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Result struct {
	Script   string             `json:"script"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Frames   []Frame            `json:"frames"`
	Metrics  map[string]float64 `json:"metrics"`
}

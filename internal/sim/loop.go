package sim

import (
	"math"
	"time"
)

const (
	DefaultFixedDt  = 1.0 / 60
	DefaultMaxFrame = 0.05
)

// Loop converts variable frame deltas into fixed physics steps. Frame time
// is clamped so a stalled host cannot trigger a burst of catch-up steps;
// whatever is left under one step carries over to the next frame.
type Loop struct {
	FixedDt  float64
	MaxFrame float64
	acc      float64
}

func NewLoop(fixedDt, maxFrame float64) *Loop {
	if fixedDt <= 0 {
		fixedDt = DefaultFixedDt
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Loop{FixedDt: fixedDt, MaxFrame: maxFrame}
}

// Advance adds frameDt to the accumulator and calls step once per whole
// FixedDt it holds. It returns the number of steps taken.
func (l *Loop) Advance(frameDt float64, step func(dt float64)) int {
	if math.IsNaN(frameDt) || frameDt < 0 {
		frameDt = 0
	}
	l.acc += math.Min(frameDt, l.MaxFrame)

	n := 0
	for l.acc >= l.FixedDt {
		step(l.FixedDt)
		l.acc -= l.FixedDt
		n++
	}
	return n
}

// Remainder is the unstepped time carried into the next frame.
func (l *Loop) Remainder() float64 { return l.acc }

func (l *Loop) Reset() { l.acc = 0 }

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	last time.Time
}

// Tick returns seconds since the previous call, or 0 on the first.
func (t *FrameTimer) Tick(now time.Time) float64 {
	if t.last.IsZero() {
		t.last = now
		return 0
	}
	dt := now.Sub(t.last).Seconds()
	t.last = now
	return dt
}

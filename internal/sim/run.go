package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rampsim/internal/control"
)

var ErrInvalidRun = errors.New("sim: invalid run parameters")

// RunScript drives c headlessly for duration seconds of frames, each
// frameDt long, pressing and releasing keys as the script says. Metrics are
// reset before the first frame.
func RunScript(ctx context.Context, c *Context, script control.Script, duration, frameDt float64, metrics ...Metric) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidRun, duration)
	}
	if frameDt <= 0 {
		return nil, fmt.Errorf("%w: frame dt must be positive, got %f", ErrInvalidRun, frameDt)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	frames := int(math.Round(duration / frameDt))
	result := &Result{
		Script:   script.Name,
		Duration: duration,
		Frames:   make([]Frame, 0, frames),
		Metrics:  make(map[string]float64),
	}
	for _, m := range metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * frameDt
		for _, e := range script.Due(t, t+frameDt) {
			if err := c.HandleKeyName(e.Key, e.Down); err != nil {
				return result, fmt.Errorf("sim: event at %.3fs: %w", e.At, err)
			}
		}

		f := c.Frame(frameDt)
		for _, m := range metrics {
			m.Observe(f)
		}
		result.Frames = append(result.Frames, f)
		result.Steps += f.Steps
	}

	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

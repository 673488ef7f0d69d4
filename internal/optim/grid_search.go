// Package optim sweeps parameter grids through batched headless runs.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/sim"
)

var ErrEmptyGrid = errors.New("optim: empty grid")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Trial is one grid point and the metrics its run produced.
type Trial struct {
	Params  map[string]float64
	Metrics map[string]float64
}

type Best struct {
	Params map[string]float64
	Value  float64
	Trials []Trial
}

// Points enumerates the cartesian product of the ranges, first parameter
// varying slowest.
func (g *GridSearch) Points() []map[string]float64 {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return nil
	}
	var out []map[string]float64
	g.pointsRecursive(0, map[string]float64{}, &out)
	return out
}

func (g *GridSearch) pointsRecursive(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}
	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val
		g.pointsRecursive(depth+1, next, out)
	}
}

// Search runs one job per grid point through sim.Batch and picks the point
// with the lowest metric, or the highest when maximize is set.
func (g *GridSearch) Search(
	ctx context.Context,
	open sim.WorldFactory,
	build func(params map[string]float64) (sim.Job, error),
	metricName string,
	maximize bool,
	limit int,
) (*Best, error) {
	points := g.Points()
	if len(points) == 0 {
		return nil, ErrEmptyGrid
	}

	jobs := make([]sim.Job, len(points))
	for i, p := range points {
		job, err := build(p)
		if err != nil {
			return nil, fmt.Errorf("optim: build %v: %w", p, err)
		}
		if job.Name == "" {
			job.Name = fmt.Sprintf("trial-%d", i)
		}
		jobs[i] = job
	}

	results, err := sim.Batch(ctx, open, jobs, limit)
	if err != nil {
		return nil, err
	}

	best := &Best{Value: math.Inf(1)}
	if maximize {
		best.Value = math.Inf(-1)
	}
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return nil, fmt.Errorf("optim: metric %q not recorded", metricName)
		}
		best.Trials = append(best.Trials, Trial{Params: points[i], Metrics: res.Metrics})
		if (maximize && val > best.Value) || (!maximize && val < best.Value) {
			best.Value = val
			best.Params = points[i]
		}
	}
	return best, nil
}

// ApplyGains overrides the gains named in params ("base_speed",
// "brake_gain"); other keys are ignored.
func ApplyGains(g control.Gains, params map[string]float64) control.Gains {
	if v, ok := params["base_speed"]; ok {
		g.BaseSpeed = v
	}
	if v, ok := params["brake_gain"]; ok {
		g.BrakeGain = v
	}
	return g
}

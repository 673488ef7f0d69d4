package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rampsim/internal/control"
	"github.com/san-kum/rampsim/internal/engine"
	"golang.org/x/sync/errgroup"
)

// WorldFactory opens a fresh world for job. Jobs may differ in engine or
// gravity, so the factory sees which one it is serving.
type WorldFactory func(job Job) (engine.World, error)

type Job struct {
	Name     string
	Options  Options
	Script   control.Script
	Duration float64
	FrameDt  float64
	// Metrics returns fresh metric instances; they are not shared between
	// jobs.
	Metrics func() []Metric
}

// Batch runs jobs concurrently, each in its own world, with at most limit
// in flight. The first failure cancels the rest.
func Batch(ctx context.Context, open WorldFactory, jobs []Job, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			w, err := open(job)
			if err != nil {
				return fmt.Errorf("sim: job %s: %w", job.Name, err)
			}
			c, err := NewContext(job.Options, w)
			if err != nil {
				return fmt.Errorf("sim: job %s: %w", job.Name, err)
			}
			var ms []Metric
			if job.Metrics != nil {
				ms = job.Metrics()
			}
			res, err := RunScript(ctx, c, job.Script, job.Duration, job.FrameDt, ms...)
			if err != nil {
				return fmt.Errorf("sim: job %s: %w", job.Name, err)
			}
			res.Script = job.Name
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: driver.go
Description: Enumeration driver. Runs the learner once per teacher vector, either
sequentially or on a pool of workers. Every run owns its table and metrics state;
per-worker aggregates are merged after all workers finish.
*/

package enumerate

import (
	"context"
	"fmt"
	"runtime"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/teacher"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Driver enumerates teachers and folds run aggregates
type Driver struct {
	learner *learner.Learner
	workers int
	logger  *logrus.Logger
}

// NewDriver creates a driver. workers <= 0 means one worker per CPU.
func NewDriver(l *learner.Learner, workers int, logger *logrus.Logger) *Driver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Driver{learner: l, workers: workers, logger: logger}
}

// Workers returns the size of the worker pool
func (d *Driver) Workers() int {
	return d.workers
}

// RunSingle learns one fixed teacher and returns its result and aggregate summary
func (d *Driver) RunSingle(ctx context.Context, v teacher.Vector) (*learner.RunResult, metrics.Summary, error) {
	res, err := d.learner.Run(ctx, v)
	if err != nil {
		return nil, metrics.Summary{}, fmt.Errorf("teacher %s: %w", v, err)
	}
	return res, res.Aggregate.Summary(), nil
}

// Run enumerates every teacher of length MaxLength+1 and returns the finalized statistics
func (d *Driver) Run(ctx context.Context) (metrics.Summary, error) {
	n := d.learner.Options().MaxLength + 1
	counter, err := NewCounter(n)
	if err != nil {
		return metrics.Summary{}, err
	}

	d.logger.WithFields(logrus.Fields{
		"vector_length": n,
		"teachers":      counter.Total(),
		"workers":       d.workers,
		"table_max":     d.learner.Options().TableMax(),
	}).Info("Starting enumeration")

	var agg metrics.Aggregate
	if d.workers == 1 {
		agg, err = d.runSequential(ctx, counter)
	} else {
		agg, err = d.runParallel(ctx, counter)
	}
	if err != nil {
		return metrics.Summary{}, err
	}

	summary := agg.Summary()
	d.logger.WithFields(logrus.Fields{
		"total_runs":  summary.TotalRuns,
		"failed_runs": summary.FailedRuns,
		"total_steps": summary.TotalSteps,
	}).Info("Enumeration completed")
	return summary, nil
}

func (d *Driver) runSequential(ctx context.Context, counter *Counter) (metrics.Aggregate, error) {
	var agg metrics.Aggregate
	for v, ok := counter.Next(); ok; v, ok = counter.Next() {
		res, err := d.learner.Run(ctx, v)
		if err != nil {
			return metrics.Aggregate{}, fmt.Errorf("teacher %s: %w", v, err)
		}
		agg.Merge(res.Aggregate)
	}
	return agg, nil
}

// runParallel feeds leaves to the pool through a channel; each worker keeps a private
// aggregate and the partials are reduced after Wait.
func (d *Driver) runParallel(ctx context.Context, counter *Counter) (metrics.Aggregate, error) {
	g, gCtx := errgroup.WithContext(ctx)
	leaves := make(chan teacher.Vector, d.workers*2)
	partials := make([]metrics.Aggregate, d.workers)

	g.Go(func() error {
		defer close(leaves)
		for v, ok := counter.Next(); ok; v, ok = counter.Next() {
			select {
			case leaves <- v:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	for w := 0; w < d.workers; w++ {
		w := w
		g.Go(func() error {
			for v := range leaves {
				res, err := d.learner.Run(gCtx, v)
				if err != nil {
					return fmt.Errorf("worker %d, teacher %s: %w", w, v, err)
				}
				partials[w].Merge(res.Aggregate)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return metrics.Aggregate{}, err
	}

	var agg metrics.Aggregate
	for _, p := range partials {
		agg.Merge(p)
	}
	return agg, nil
}

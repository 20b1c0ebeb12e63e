/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learner.go
Description: Learner orchestrator for the instrumented unary L* variant. Drives the
grow -> check invariants -> equivalence check -> refine cycle until the hypothesis
matches the teacher over the probe range or a growth bound overflows. Overflow is a
designed, run-scoped failure and never an error return.
*/

package learner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/lstar-probe/pkg/equivalence"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/table"
	"github.com/kleascm/lstar-probe/pkg/teacher"
)

// Learner runs L* against one teacher at a time. A Learner holds no per-run state
// and may be shared by concurrent runs as long as its reporters are concurrency-safe.
type Learner struct {
	opts      Options
	reporters []Reporter
}

// New creates a learner. TableMax must be at least 1 so the first extension row fits.
func New(opts Options, reporters ...Reporter) (*Learner, error) {
	if opts.MaxLength < 0 || opts.OverflowSlack < 0 {
		return nil, fmt.Errorf("max_length=%d overflow_slack=%d: %w", opts.MaxLength, opts.OverflowSlack, ErrInvalidOptions)
	}
	if opts.TableMax() < 1 {
		return nil, fmt.Errorf("table max %d: %w", opts.TableMax(), ErrInvalidOptions)
	}
	return &Learner{opts: opts, reporters: reporters}, nil
}

// Options returns the learner configuration
func (l *Learner) Options() Options {
	return l.opts
}

// AddReporter registers a reporter for subsequent runs
func (l *Learner) AddReporter(r Reporter) {
	l.reporters = append(l.reporters, r)
}

// Run learns the teacher. The only error paths are a mismatched teacher length and
// context cancellation; overflow ends the run in StateFailed.
func (l *Learner) Run(ctx context.Context, v teacher.Vector) (*RunResult, error) {
	if v.Len() != l.opts.MaxLength+1 {
		return nil, fmt.Errorf("got %d positions for max length %d: %w", v.Len(), l.opts.MaxLength, ErrTeacherLength)
	}

	tbl, err := table.New(v, l.opts.TableMax())
	if err != nil {
		return nil, fmt.Errorf("failed to create observation table: %w", err)
	}

	res := &RunResult{
		ID:          uuid.New().String(),
		TeacherBits: v.String(),
		Teacher:     v,
		State:       StateGrowing,
		Steps:       make([]Step, 0, 4),
		Table:       tbl,
		StartedAt:   time.Now(),
	}
	tracker := metrics.NewTracker()

	for !res.State.Terminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch res.State {
		case StateGrowing:
			if err := l.grow(tbl, res); err != nil {
				l.fail(res, err)
				continue
			}
			res.State = StateEquivalenceCheck

		case StateEquivalenceCheck:
			step, err := l.check(tbl, v, tracker, len(res.Steps)+1)
			if err != nil {
				return nil, err
			}
			res.Steps = append(res.Steps, step)
			res.Aggregate.Record(step.Measurement)
			for _, r := range l.reporters {
				r.OnStep(res, &res.Steps[len(res.Steps)-1])
			}

			if step.Equivalence.Matched {
				res.State = StateMatched
				res.Outcome = metrics.OutcomeMatched
			} else {
				res.State = StateRefining
			}

		case StateRefining:
			ce := res.Steps[len(res.Steps)-1].Equivalence.Counterexample
			if err := tbl.Refine(ce); err != nil {
				return nil, fmt.Errorf("refine with counterexample %d: %w", ce, err)
			}
			res.Refinements++
			res.State = StateGrowing
		}
	}

	res.Duration = time.Since(res.StartedAt)
	res.Aggregate.RecordRun(res.Outcome)
	for _, r := range l.reporters {
		r.OnRunComplete(res)
	}
	return res, nil
}

// grow alternates consistency-driven column growth and closure-driven row growth,
// re-checking both after each growth, until both hold or a bound overflows.
func (l *Learner) grow(tbl *table.Table, res *RunResult) error {
	closed := tbl.IsClosed()
	consistent := tbl.IsConsistent()

	for !(closed && consistent) {
		closed, consistent = false, false

		if !tbl.IsConsistent() {
			if err := tbl.GrowColumn(); err != nil {
				return err
			}
			res.ColumnGrowths++
		} else {
			consistent = true
		}

		if !tbl.IsClosed() {
			if err := tbl.GrowRow(); err != nil {
				return err
			}
			res.RowGrowths++
		} else {
			closed = true
		}
	}
	return nil
}

func (l *Learner) check(tbl *table.Table, v teacher.Vector, tracker *metrics.Tracker, index int) (Step, error) {
	step := Step{
		Index:      index,
		MaxRow:     tbl.MaxRow(),
		MaxCol:     tbl.MaxCol(),
		Closed:     tbl.IsClosed(),
		Consistent: tbl.IsConsistent(),
	}

	eq, err := equivalence.Check(tbl, v)
	if err != nil {
		return Step{}, fmt.Errorf("equivalence check at step %d: %w", index, err)
	}
	step.Equivalence = eq
	step.Measurement = tracker.Observe(eq.Counts)

	if l.opts.RecordTables {
		step.Table = tbl.String()
	}
	return step, nil
}

func (l *Learner) fail(res *RunResult, err error) {
	res.State = StateFailed
	res.Failure = err
	switch {
	case errors.Is(err, table.ErrColumnOverflow):
		res.Outcome = metrics.OutcomeColumnOverflow
		res.FailureReason = "column overflow"
	case errors.Is(err, table.ErrRowOverflow):
		res.Outcome = metrics.OutcomeRowOverflow
		res.FailureReason = "row overflow"
	default:
		res.FailureReason = err.Error()
	}
}

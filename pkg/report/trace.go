/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: trace.go
Description: Human-readable trace of learning runs: accepted positions of teacher and
hypothesis, per-step mutual information and oracle values, optional verbose
annotations and table dumps, and overflow banners.
*/

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/metrics"
)

// TraceReporter writes one trace block per finished run. Blocks are written whole
// under a mutex so parallel runs never interleave.
type TraceReporter struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// NewTraceReporter creates a trace writer. Verbose adds count breakdowns,
// counterexamples, annotations and table dumps (when the learner recorded them).
func NewTraceReporter(w io.Writer, verbose bool) *TraceReporter {
	return &TraceReporter{w: w, verbose: verbose}
}

// OnStep is a no-op; the whole run is rendered on completion
func (r *TraceReporter) OnStep(run *learner.RunResult, step *learner.Step) {}

// OnRunComplete renders the run
func (r *TraceReporter) OnRunComplete(run *learner.RunResult) {
	block := RenderRun(run, r.verbose)
	r.mu.Lock()
	defer r.mu.Unlock()
	io.WriteString(r.w, block)
}

// RenderRun formats a run the way the analysis trace lays it out
func RenderRun(run *learner.RunResult, verbose bool) string {
	var b strings.Builder

	b.WriteString("TEACHER ACCEPTS: ")
	writePositions(&b, run.Teacher.Accepted())
	b.WriteString("\n")

	for i := range run.Steps {
		writeStep(&b, &run.Steps[i], verbose)
	}

	switch run.Outcome {
	case metrics.OutcomeColumnOverflow:
		b.WriteString("\n***\nEXCEEDED MAX COLUMNS\n***\n")
	case metrics.OutcomeRowOverflow:
		b.WriteString("\n***\nEXCEEDED MAX ROWS\n***\n")
	default:
		b.WriteString("\n")
	}
	return b.String()
}

func writeStep(b *strings.Builder, step *learner.Step, verbose bool) {
	if verbose && step.Table != "" {
		b.WriteString(step.Table)
		b.WriteString("\n")
	}

	b.WriteString("LEARNER ACCEPTS: ")
	writePositions(b, step.Equivalence.LearnerAccepts)
	b.WriteString("\n")

	m := step.Measurement
	c := m.Counts
	if verbose {
		n := c.Probes()
		fmt.Fprintf(b, "TRUE NEGATIVE: %2d/%2d a = %f\n", c.TrueNegative, n, m.Proportions.A)
		fmt.Fprintf(b, "FALSE POSITIVE: %2d/%2d b = %f\n", c.FalsePositive, n, m.Proportions.B)
		fmt.Fprintf(b, "TRUE POSITIVE: %2d/%2d c = %f\n", c.TruePositive, n, m.Proportions.C)
		fmt.Fprintf(b, "FALSE NEGATIVE: %2d/%2d d = %f\n", c.FalseNegative, n, m.Proportions.D)
		if m.FPFNImproved {
			b.WriteString("BOTH FALSE POSITIVES AND NEGATIVES DECREASED FROM PREVIOUS STEP\n")
		}
	}

	fmt.Fprintf(b, "MUTUAL INFO = %f\n", m.MutualInfo)
	fmt.Fprintf(b, "CHANGE IN MUTUAL INFO = %f\n", m.DeltaMI)

	if verbose && m.MIDecreased {
		if m.PreviousOracleGood {
			b.WriteString("DECREASE IN MUTUAL INFO WITH GOOD ORACLE\n")
		} else {
			b.WriteString("DECREASE IN MUTUAL INFO WITH BAD ORACLE\n")
		}
	}

	fmt.Fprintf(b, "bd-ac = %f\n", m.Oracle)

	if verbose && !step.Equivalence.Matched {
		fmt.Fprintf(b, "COUNTEREXAMPLE = %2d\n", step.Equivalence.Counterexample)
	}
}

func writePositions(b *strings.Builder, positions []int) {
	for _, p := range positions {
		fmt.Fprintf(b, "%2d ", p)
	}
}

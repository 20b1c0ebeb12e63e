/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the learner orchestrator: options, learner states, the
per-step record and the result of one learning run.
*/

package learner

import (
	"errors"
	"time"

	"github.com/kleascm/lstar-probe/pkg/equivalence"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/table"
	"github.com/kleascm/lstar-probe/pkg/teacher"
)

var (
	// ErrInvalidOptions is returned by New for negative bounds or a table too small to start
	ErrInvalidOptions = errors.New("learner: invalid options")

	// ErrTeacherLength is returned by Run when the teacher does not cover [0, MaxLength]
	ErrTeacherLength = errors.New("learner: teacher length does not match MaxLength+1")
)

// Options configures a learner
type Options struct {
	MaxLength     int `json:"max_length"`     // largest query position in the teacher's domain
	OverflowSlack int `json:"overflow_slack"` // extra table capacity beyond MaxLength
	// RecordTables keeps a text dump of the table on every step
	RecordTables bool `json:"record_tables"`
}

// TableMax returns MaxLength + OverflowSlack
func (o Options) TableMax() int {
	return o.MaxLength + o.OverflowSlack
}

// SlackSufficient reports whether the slack is large enough to expose every false
// positive and false negative (OverflowSlack >= MaxLength+1).
func (o Options) SlackSufficient() bool {
	return o.OverflowSlack >= o.MaxLength+1
}

// State is a learner state
type State int

const (
	StateGrowing State = iota
	StateEquivalenceCheck
	StateRefining
	StateMatched
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateGrowing:
		return "GROWING"
	case StateEquivalenceCheck:
		return "EQUIVALENCE_CHECK"
	case StateRefining:
		return "REFINING"
	case StateMatched:
		return "MATCHED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the run is over
func (s State) Terminal() bool {
	return s == StateMatched || s == StateFailed
}

// Step records one GROWING -> EQUIVALENCE_CHECK cycle
type Step struct {
	Index  int `json:"index"` // 1-based
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`

	// Closed and Consistent are sampled on entry to the equivalence check
	Closed     bool `json:"closed"`
	Consistent bool `json:"consistent"`

	Equivalence equivalence.Result  `json:"equivalence"`
	Measurement metrics.Measurement `json:"measurement"`

	// Table is the dump at the equivalence check, only when Options.RecordTables is set
	Table string `json:"table,omitempty"`
}

// RunResult is everything known about one learning run
type RunResult struct {
	ID          string          `json:"id"`
	TeacherBits string          `json:"teacher"`
	Teacher     teacher.Vector  `json:"-"`
	State       State           `json:"state"`
	Outcome     metrics.Outcome `json:"outcome"`
	// Failure is the overflow that aborted the run, nil when matched
	Failure       error  `json:"-"`
	FailureReason string `json:"failure,omitempty"`

	Steps         []Step `json:"steps"`
	ColumnGrowths int    `json:"column_growths"`
	RowGrowths    int    `json:"row_growths"`
	Refinements   int    `json:"refinements"`

	// Aggregate is this run's contribution to the global statistics
	Aggregate metrics.Aggregate `json:"aggregate"`

	Table     *table.Table  `json:"-"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Matched reports whether the final hypothesis agrees with the teacher on every probe
func (r *RunResult) Matched() bool {
	return r.State == StateMatched
}

// LastStep returns the final step, or nil if the run failed before its first equivalence check
func (r *RunResult) LastStep() *Step {
	if len(r.Steps) == 0 {
		return nil
	}
	return &r.Steps[len(r.Steps)-1]
}

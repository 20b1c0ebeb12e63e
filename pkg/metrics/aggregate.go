/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: aggregate.go
Description: Aggregate statistics across learning runs. Each run folds its steps into
its own Aggregate; the enumeration driver merges per-run or per-worker aggregates at
the boundary, so no counter is shared between concurrently running learners.
*/

package metrics

// Outcome is how a learning run ended
type Outcome int

const (
	OutcomeMatched Outcome = iota
	OutcomeColumnOverflow
	OutcomeRowOverflow
)

// String returns a short label usable in logs and metric labels
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeColumnOverflow:
		return "column_overflow"
	case OutcomeRowOverflow:
		return "row_overflow"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by label
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Failed reports whether the outcome counts as a failed run
func (o Outcome) Failed() bool {
	return o == OutcomeColumnOverflow || o == OutcomeRowOverflow
}

// Aggregate holds the raw counters. The zero value is ready to use.
type Aggregate struct {
	TotalRuns       int64 `json:"total_runs"`
	MatchedRuns     int64 `json:"matched_runs"`
	FailedRuns      int64 `json:"failed_runs"`
	ColumnOverflows int64 `json:"column_overflows"`
	RowOverflows    int64 `json:"row_overflows"`

	TotalSteps int64 `json:"total_steps"`

	// Oracle quality of the previous step, tallied on every step that has one
	GoodOracleSteps int64 `json:"good_oracle_steps"`
	BadOracleSteps  int64 `json:"bad_oracle_steps"`

	MIDecreaseSteps      int64 `json:"mi_decrease_steps"`
	MIDecreaseGoodOracle int64 `json:"mi_decrease_good_oracle"`
	MIDecreaseBadOracle  int64 `json:"mi_decrease_bad_oracle"`

	FPFNImprovementSteps int64 `json:"fp_fn_improvement_steps"`
}

// Record folds one step's measurement into the counters
func (a *Aggregate) Record(m Measurement) {
	a.TotalSteps++
	if !m.HasPrevious {
		return
	}

	if m.PreviousOracleGood {
		a.GoodOracleSteps++
	} else {
		a.BadOracleSteps++
	}

	if m.MIDecreased {
		a.MIDecreaseSteps++
		if m.PreviousOracleGood {
			a.MIDecreaseGoodOracle++
		} else {
			a.MIDecreaseBadOracle++
		}
	}

	if m.FPFNImproved {
		a.FPFNImprovementSteps++
	}
}

// RecordRun counts a finished run
func (a *Aggregate) RecordRun(o Outcome) {
	a.TotalRuns++
	switch o {
	case OutcomeMatched:
		a.MatchedRuns++
	case OutcomeColumnOverflow:
		a.FailedRuns++
		a.ColumnOverflows++
	case OutcomeRowOverflow:
		a.FailedRuns++
		a.RowOverflows++
	}
}

// Merge adds other's counters into a
func (a *Aggregate) Merge(other Aggregate) {
	a.TotalRuns += other.TotalRuns
	a.MatchedRuns += other.MatchedRuns
	a.FailedRuns += other.FailedRuns
	a.ColumnOverflows += other.ColumnOverflows
	a.RowOverflows += other.RowOverflows
	a.TotalSteps += other.TotalSteps
	a.GoodOracleSteps += other.GoodOracleSteps
	a.BadOracleSteps += other.BadOracleSteps
	a.MIDecreaseSteps += other.MIDecreaseSteps
	a.MIDecreaseGoodOracle += other.MIDecreaseGoodOracle
	a.MIDecreaseBadOracle += other.MIDecreaseBadOracle
	a.FPFNImprovementSteps += other.FPFNImprovementSteps
}

// Summary is the finalized view of an Aggregate
type Summary struct {
	Aggregate

	AverageSteps float64 `json:"average_steps"`
	// MIDecreaseGoodOracleRatio is the share of MI-decrease steps that followed a negative oracle.
	// It is an empirical output, not a correctness property.
	MIDecreaseGoodOracleRatio float64 `json:"mi_decrease_good_oracle_ratio"`
	// GoodOracleRatio is the share of oracle-tallied steps with a negative oracle
	GoodOracleRatio float64 `json:"good_oracle_ratio"`
}

// Summary finalizes the counters. Ratios with an empty denominator are zero.
func (a Aggregate) Summary() Summary {
	s := Summary{Aggregate: a}
	if a.TotalRuns > 0 {
		s.AverageSteps = float64(a.TotalSteps) / float64(a.TotalRuns)
	}
	if a.MIDecreaseSteps > 0 {
		s.MIDecreaseGoodOracleRatio = float64(a.MIDecreaseGoodOracle) / float64(a.MIDecreaseSteps)
	}
	if tallied := a.GoodOracleSteps + a.BadOracleSteps; tallied > 0 {
		s.GoodOracleRatio = float64(a.GoodOracleSteps) / float64(tallied)
	}
	return s
}

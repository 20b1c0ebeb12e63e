/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tracker.go
Description: Per-run measurement state. The tracker remembers the previous step's
mutual information, oracle and false positive/negative counts, so that each new
equivalence check can be classified against it.
*/

package metrics

// Measurement is the instrumentation attached to one refinement step
type Measurement struct {
	Counts      Counts      `json:"counts"`
	Proportions Proportions `json:"proportions"`
	MutualInfo  float64     `json:"mutual_info"`
	DeltaMI     float64     `json:"delta_mi"`
	Oracle      float64     `json:"oracle"`

	// HasPrevious is false on the first step of a run; the flags below are meaningful only when true
	HasPrevious bool `json:"has_previous"`
	// PreviousOracleGood reports whether the previous step's oracle was negative
	PreviousOracleGood bool `json:"previous_oracle_good"`
	// MIDecreased reports DeltaMI < -DecreaseEpsilon
	MIDecreased bool `json:"mi_decreased"`
	// FPFNImproved reports that false positives and false negatives both strictly decreased
	FPFNImproved bool `json:"fp_fn_improved"`
}

// Tracker holds the metrics state of a single learning run. Not safe for concurrent use.
type Tracker struct {
	hasPrevious    bool
	prevMutualInfo float64
	prevOracle     float64
	prevFP         int
	prevFN         int
}

// NewTracker creates a tracker with no previous step
func NewTracker() *Tracker {
	return &Tracker{}
}

// Reset forgets the previous step
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Observe measures a new equivalence check and advances the tracker
func (t *Tracker) Observe(c Counts) Measurement {
	p := c.Proportions()
	m := Measurement{
		Counts:      c,
		Proportions: p,
		MutualInfo:  MutualInformation(p),
		Oracle:      Oracle(p),
		HasPrevious: t.hasPrevious,
	}

	if t.hasPrevious {
		m.DeltaMI = m.MutualInfo - t.prevMutualInfo
		m.PreviousOracleGood = t.prevOracle < 0
		m.MIDecreased = m.DeltaMI < -DecreaseEpsilon
		m.FPFNImproved = c.FalsePositive < t.prevFP && c.FalseNegative < t.prevFN
	} else {
		m.DeltaMI = m.MutualInfo
	}

	t.hasPrevious = true
	t.prevMutualInfo = m.MutualInfo
	t.prevOracle = m.Oracle
	t.prevFP = c.FalsePositive
	t.prevFN = c.FalseNegative
	return m
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: equivalence.go
Description: Approximate equivalence query. Walks every probe position in
[0, TableMax], follows the hypothesis through the observation table with a row
cursor, classifies each position against the teacher and reports the first
disagreement as a counterexample.
*/

package equivalence

import (
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/kleascm/lstar-probe/pkg/table"
	"github.com/kleascm/lstar-probe/pkg/teacher"
)

// Result is the outcome of one equivalence check
type Result struct {
	Counts  metrics.Counts `json:"counts"`
	Matched bool           `json:"matched"`
	// Counterexample is the first disagreeing position. Only valid when Matched is false.
	Counterexample int `json:"counterexample"`
	// LearnerAccepts lists the positions the hypothesis accepts (true and false positives)
	LearnerAccepts []int `json:"learner_accepts"`
}

// Check compares the hypothesis encoded in tbl against the teacher on [0, tbl.TableMax()].
// The table is expected to be closed and consistent.
//
// The cursor starts at row 0 and advances by one per position. When it reaches maxRow it
// hops to the first row of S matching the extension row maxRow+1, or stays put if none does.
func Check(tbl *table.Table, oracle teacher.Oracle) (Result, error) {
	res := Result{LearnerAccepts: make([]int, 0)}
	found := false
	row := 0

	for i := 0; i <= tbl.TableMax(); i++ {
		hypothesis, err := tbl.Hypothesis(row)
		if err != nil {
			return Result{}, fmt.Errorf("probe %d: %w", i, err)
		}
		actual := oracle.MembershipQuery(i)

		switch {
		case hypothesis && actual:
			res.Counts.TruePositive++
		case !hypothesis && !actual:
			res.Counts.TrueNegative++
		case hypothesis && !actual:
			res.Counts.FalsePositive++
		default:
			res.Counts.FalseNegative++
		}
		if hypothesis {
			res.LearnerAccepts = append(res.LearnerAccepts, i)
		}
		if hypothesis != actual && !found {
			res.Counterexample = i
			found = true
		}

		if row == tbl.MaxRow() {
			if match, ok := tbl.MatchExtensionRow(); ok {
				row = match
			}
		} else {
			row++
		}
	}

	res.Matched = res.Counts.Agrees()
	if res.Matched {
		res.Counterexample = 0
	}
	return res, nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: summary.go
Description: Final aggregate summary in plain text.
*/

package report

import (
	"fmt"
	"io"

	"github.com/kleascm/lstar-probe/pkg/metrics"
)

// WriteSummary prints the aggregate statistics, one line per figure
func WriteSummary(w io.Writer, s metrics.Summary) error {
	lines := []struct {
		label string
		value interface{}
	}{
		{"Total Runs", s.TotalRuns},
		{"Failed Runs", s.FailedRuns},
		{"Failed Runs (Column Overflow)", s.ColumnOverflows},
		{"Failed Runs (Row Overflow)", s.RowOverflows},
		{"Total Number of Steps", s.TotalSteps},
		{"Average Number of Steps", fmt.Sprintf("%f", s.AverageSteps)},
		{"Number of Steps with Good Oracle", s.GoodOracleSteps},
		{"Number of Steps with Bad Oracle", s.BadOracleSteps},
		{"Number of Steps with Decrease in Mutual Info", s.MIDecreaseSteps},
		{"Number of Steps with Decrease in Mutual Info & Good Oracle", s.MIDecreaseGoodOracle},
		{"Number of Steps with Decrease in Mutual Info & Bad Oracle", s.MIDecreaseBadOracle},
		{"Share of Mutual Info Decreases with Good Oracle", fmt.Sprintf("%f", s.MIDecreaseGoodOracleRatio)},
		{"Number of Steps with Decrease in Both False Positives and False Negatives", s.FPFNImprovementSteps},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s = %v\n", l.label, l.value); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

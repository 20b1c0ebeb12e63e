/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: mutual_info.go
Description: Mutual-info command. Evaluates the mutual information and the bd-ac
oracle for raw confusion counts.
*/

package commands

import (
	"errors"
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/spf13/cobra"
)

// RunMutualInfo prints MI and the oracle for --tn --fp --tp --fn
func RunMutualInfo(cmd *cobra.Command, args []string) error {
	var counts metrics.Counts
	var err error
	flags := cmd.Flags()
	if counts.TrueNegative, err = flags.GetInt("tn"); err != nil {
		return err
	}
	if counts.FalsePositive, err = flags.GetInt("fp"); err != nil {
		return err
	}
	if counts.TruePositive, err = flags.GetInt("tp"); err != nil {
		return err
	}
	if counts.FalseNegative, err = flags.GetInt("fn"); err != nil {
		return err
	}

	if counts.TrueNegative < 0 || counts.FalsePositive < 0 || counts.TruePositive < 0 || counts.FalseNegative < 0 {
		return errors.New("counts must not be negative")
	}
	if counts.Probes() == 0 {
		return errors.New("at least one count must be positive")
	}

	p := counts.Proportions()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "TRUE NEGATIVE = %f\n", p.A)
	fmt.Fprintf(out, "FALSE POSITIVE = %f\n", p.B)
	fmt.Fprintf(out, "TRUE POSITIVE = %f\n", p.C)
	fmt.Fprintf(out, "FALSE NEGATIVE = %f\n", p.D)
	fmt.Fprintf(out, "MUTUAL INFO = %f\n", metrics.MutualInformation(p))
	fmt.Fprintf(out, "bd-ac = %f\n", metrics.Oracle(p))
	return nil
}

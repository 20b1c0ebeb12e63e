/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Check command. Validates the configuration and reports whether the
overflow slack is large enough for every teacher to be learnable.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RunCheck prints the resolved configuration and its sizing verdict
func RunCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "Configuration Check")

	fmt.Fprintf(out, "Max Length = %d\n", cfg.MaxLength)
	fmt.Fprintf(out, "Overflow Slack = %d\n", cfg.OverflowSlack)
	fmt.Fprintf(out, "Table Max = %d\n", cfg.TableMax())
	if cfg.Enumerate {
		fmt.Fprintf(out, "Mode = enumerate (%d teachers)\n", uint64(1)<<uint(cfg.MaxLength+1))
	} else {
		fmt.Fprintf(out, "Mode = single teacher %s\n", cfg.Teacher)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(out, "❌ Configuration invalid")
		return err
	}
	fmt.Fprintln(out, "✅ Configuration valid")

	if cfg.SlackSufficient() {
		fmt.Fprintln(out, "✅ Overflow slack covers max_length+1, every teacher can be learned")
	} else {
		fmt.Fprintf(out, "⚠️  Overflow slack %d is below max_length+1 = %d, some teachers will overflow\n",
			cfg.OverflowSlack, cfg.MaxLength+1)
	}
	return nil
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for lstar-probe. Wires cobra commands and viper
configuration for single-teacher learning, exhaustive enumeration, configuration
checks and mutual information evaluation.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/lstar-probe/cmd/lstar-probe/commands"
	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lstar-probe",
		Short: "lstar-probe - instrumented L* learning over bounded unary languages",
		Long: `lstar-probe runs Angluin-style L* learning against teachers that accept a
finite set of string lengths. Every equivalence check is measured with the mutual
information between hypothesis and teacher and with the bd-ac oracle heuristic, and
the statistics can be aggregated over every teacher of a given length.`,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file path")
	flags.String("log-level", d.Log.Level, "Logging level (debug, info, warn, error)")
	flags.String("log-format", d.Log.Format, "Log format (text, json, custom)")
	flags.String("log-dir", d.Log.Dir, "Log output directory (empty: console only)")
	flags.Int("max-length", d.MaxLength, "Longest string length the teacher decides")
	flags.Int("overflow-slack", d.OverflowSlack, "Extra table capacity beyond max-length")
	flags.Bool("verbose", d.Verbose, "Write table dumps and oracle annotations to the trace")
	flags.String("trace-file", d.TraceFile, "Write the per-run analysis trace to this file")
	flags.String("output-dir", d.OutputDir, "Write JSON results under this directory")
	flags.String("metrics-file", d.MetricsFile, "Write Prometheus metrics in text format to this file")

	viper.BindPFlag("config", flags.Lookup("config"))
	viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	viper.BindPFlag(config.KeyLogDir, flags.Lookup("log-dir"))
	viper.BindPFlag(config.KeyMaxLength, flags.Lookup("max-length"))
	viper.BindPFlag(config.KeyOverflowSlack, flags.Lookup("overflow-slack"))
	viper.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	viper.BindPFlag(config.KeyTraceFile, flags.Lookup("trace-file"))
	viper.BindPFlag(config.KeyOutputDir, flags.Lookup("output-dir"))
	viper.BindPFlag(config.KeyMetricsFile, flags.Lookup("metrics-file"))

	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a single fixed teacher",
		Long: `Learn one teacher given as a bit string of length max-length+1, where bit i
says whether the string of length i is accepted. The analysis trace is written to
stdout unless --trace-file is set.`,
		RunE: commands.RunLearn,
	}
	learnCmd.Flags().String("teacher", d.Teacher, "Teacher bit string, index 0 first")
	viper.BindPFlag(config.KeyTeacher, learnCmd.Flags().Lookup("teacher"))

	enumerateCmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Learn every teacher of length max-length+1",
		Long: `Enumerate all 2^(max-length+1) teachers, learn each one and print the
aggregate statistics.`,
		RunE: commands.RunEnumerate,
	}
	enumerateCmd.Flags().Int("workers", d.Workers, "Number of parallel workers (0 = one per CPU)")
	viper.BindPFlag(config.KeyWorkers, enumerateCmd.Flags().Lookup("workers"))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Learn or enumerate depending on the enumerate setting",
		RunE:  commands.RunConfigured,
	}
	runCmd.Flags().Bool("enumerate", d.Enumerate, "Enumerate every teacher instead of learning one")
	viper.BindPFlag(config.KeyEnumerate, runCmd.Flags().Lookup("enumerate"))

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and the table sizing",
		RunE:  commands.RunCheck,
	}

	miCmd := &cobra.Command{
		Use:   "mutual-info",
		Short: "Evaluate mutual information and the bd-ac oracle for raw counts",
		RunE:  commands.RunMutualInfo,
	}
	miCmd.Flags().Int("tn", 0, "True negatives (a)")
	miCmd.Flags().Int("fp", 0, "False positives (b)")
	miCmd.Flags().Int("tp", 0, "True positives (c)")
	miCmd.Flags().Int("fn", 0, "False negatives (d)")

	rootCmd.AddCommand(learnCmd, enumerateCmd, runCmd, checkCmd, miCmd)
	return rootCmd
}

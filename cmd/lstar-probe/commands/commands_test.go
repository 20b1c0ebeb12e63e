/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: commands_test.go
Description: End-to-end tests for the lstar-probe commands driven through viper
settings, checking printed summaries and the trace, metrics and JSON artifacts.
*/

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, settings map[string]interface{}) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(config.KeyLogLevel, "error")
	for k, v := range settings {
		viper.Set(k, v)
	}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestRunLearnDefaultTeacher(t *testing.T) {
	cmd, out := newTestCommand(t, nil)

	require.NoError(t, RunLearn(cmd, nil))

	text := out.String()
	assert.Contains(t, text, "Learning Session")
	assert.Contains(t, text, "TEACHER ACCEPTS:  0  3  7 10 \n")
	assert.Contains(t, text, "CHANGE IN MUTUAL INFO = ")
	assert.Contains(t, text, "Total Runs = 1\n")
	assert.Contains(t, text, "Failed Runs = 0\n")
	assert.Contains(t, text, "Total Number of Steps = 4\n")
}

func TestRunLearnInvalidTeacher(t *testing.T) {
	cmd, _ := newTestCommand(t, map[string]interface{}{
		config.KeyTeacher: "1010",
	})
	err := RunLearn(cmd, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunEnumerateArtifacts(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "analysis.txt")
	metricsPath := filepath.Join(dir, "lstar.prom")

	cmd, out := newTestCommand(t, map[string]interface{}{
		config.KeyMaxLength:     2,
		config.KeyOverflowSlack: 0,
		config.KeyWorkers:       1,
		config.KeyTraceFile:     tracePath,
		config.KeyMetricsFile:   metricsPath,
		config.KeyOutputDir:     dir,
	})

	require.NoError(t, RunEnumerate(cmd, nil))

	text := out.String()
	assert.Contains(t, text, "Enumeration Session")
	assert.Contains(t, text, "Total Runs = 8\n")
	assert.Contains(t, text, "Failed Runs = 2\n")
	assert.Contains(t, text, "Failed Runs (Row Overflow) = 2\n")
	assert.NotContains(t, text, "TEACHER ACCEPTS", "enumeration traces only go to the trace file")

	trace, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Equal(t, 8, bytes.Count(trace, []byte("TEACHER ACCEPTS:")))
	assert.Equal(t, 2, bytes.Count(trace, []byte("EXCEEDED MAX ROWS")))

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `lstar_runs_total{outcome="row_overflow"} 2`)
	assert.Contains(t, string(prom), `lstar_runs_total{outcome="matched"} 6`)

	results, err := filepath.Glob(filepath.Join(dir, "enumerate", "*_enumerate_v"+Version+".json"))
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRunConfiguredDispatch(t *testing.T) {
	cmd, out := newTestCommand(t, map[string]interface{}{
		config.KeyEnumerate: false,
		config.KeyMaxLength: 3,
		config.KeyTeacher:   "0101",
	})
	require.NoError(t, RunConfigured(cmd, nil))
	assert.Contains(t, out.String(), "Learning Session")
	assert.Contains(t, out.String(), "Total Runs = 1\n")

	cmd, out = newTestCommand(t, map[string]interface{}{
		config.KeyEnumerate:     true,
		config.KeyMaxLength:     3,
		config.KeyOverflowSlack: 4,
	})
	require.NoError(t, RunConfigured(cmd, nil))
	assert.Contains(t, out.String(), "Enumeration Session")
	assert.Contains(t, out.String(), "Total Runs = 16\n")
	assert.Contains(t, out.String(), "Failed Runs = 0\n")
}

func TestRunCheck(t *testing.T) {
	cmd, out := newTestCommand(t, map[string]interface{}{
		config.KeyMaxLength:     4,
		config.KeyOverflowSlack: 0,
	})
	require.NoError(t, RunCheck(cmd, nil))
	assert.Contains(t, out.String(), "Table Max = 4\n")
	assert.Contains(t, out.String(), "Mode = enumerate (32 teachers)")
	assert.Contains(t, out.String(), "some teachers will overflow")

	cmd, out = newTestCommand(t, map[string]interface{}{
		config.KeyOverflowSlack: -1,
	})
	assert.ErrorIs(t, RunCheck(cmd, nil), config.ErrInvalidConfig)
	assert.Contains(t, out.String(), "Configuration invalid")
}

func TestRunMutualInfo(t *testing.T) {
	cmd, out := newTestCommand(t, nil)
	cmd.Flags().Int("tn", 0, "")
	cmd.Flags().Int("fp", 0, "")
	cmd.Flags().Int("tp", 0, "")
	cmd.Flags().Int("fn", 0, "")

	require.NoError(t, cmd.Flags().Set("tn", "1"))
	require.NoError(t, cmd.Flags().Set("tp", "1"))
	require.NoError(t, RunMutualInfo(cmd, nil))
	assert.Contains(t, out.String(), "MUTUAL INFO = 1.000000\n")
	assert.Contains(t, out.String(), "bd-ac = -0.250000\n")

	require.NoError(t, cmd.Flags().Set("tn", "0"))
	require.NoError(t, cmd.Flags().Set("tp", "0"))
	assert.Error(t, RunMutualInfo(cmd, nil))
}

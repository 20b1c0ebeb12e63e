/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for logger creation, formats, file output and retention, and the
custom formatter.
*/

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/metrics"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCreation(t *testing.T) {
	logger, err := NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger.GetLogger())
	assert.Empty(t, logger.FilePath())
	require.NoError(t, logger.Close())
}

func TestLoggerConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxFiles = -1
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestLogFormats(t *testing.T) {
	for _, format := range []LogFormat{LogFormatText, LogFormatJSON, LogFormatCustom} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(&LoggerConfig{
				Level:   LogLevelInfo,
				Format:  format,
				Console: &buf,
			})
			require.NoError(t, err)
			defer logger.Close()

			logger.Info("Test message", map[string]interface{}{"test_key": "test_value"})
			assert.Contains(t, buf.String(), "Test message")
			assert.Contains(t, buf.String(), "test_value")
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&LoggerConfig{Level: LogLevelWarning, Format: LogFormatCustom, Console: &buf})
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug("hidden debug", nil)
	logger.Info("hidden info", nil)
	logger.Warning("shown warning", nil)
	logger.Error("shown error", nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARNING shown warning")
	assert.Contains(t, out, "ERROR shown error")
}

func TestFileOutputAndRetention(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, filePrefix+"2020-01-0"+string(rune('1'+i))+"_00-00-00.log")
		require.NoError(t, os.WriteFile(name, []byte("old\n"), 0644))
	}

	var console bytes.Buffer
	logger, err := NewLogger(&LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatText,
		OutputDir: dir,
		MaxFiles:  2,
		Console:   &console,
	})
	require.NoError(t, err)
	require.NotEmpty(t, logger.FilePath())

	logger.Info("written to both", nil)
	path := logger.FilePath()
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to both")
	assert.Contains(t, console.String(), "written to both")

	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, path, "the newest file survives cleanup")
}

func TestSessionHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: LogFormatCustom, Console: &buf})
	require.NoError(t, err)
	defer logger.Close()

	logger.LogSession("0123456789abcdef", learner.Options{MaxLength: 4, OverflowSlack: 0}, true, 2)
	logger.LogArtifact("trace", "/tmp/trace.txt")

	agg := metrics.Aggregate{TotalRuns: 4, MatchedRuns: 3, FailedRuns: 1, RowOverflows: 1, TotalSteps: 6}
	logger.LogSummary(agg.Summary())

	out := buf.String()
	assert.Contains(t, out, "[SESSION] Session started")
	assert.Contains(t, out, "session_id=01234567 ")
	assert.Contains(t, out, "[OVERFLOW] Overflow slack below max_length+1")
	assert.Contains(t, out, "Artifact written")
	assert.Contains(t, out, "[SUMMARY] Summary")
	assert.Contains(t, out, "total_runs=4")
	assert.Contains(t, out, "average_steps=1.500000")
}

func TestCustomFormatter(t *testing.T) {
	f := &CustomFormatter{Timestamp: true}
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.DebugLevel,
		Message: "Equivalence check",
		Data: logrus.Fields{
			"step":        2,
			"mutual_info": 0.25,
			"run_id":      "abcdef0123456789",
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:30:00.000 DEBUG [STEP] Equivalence check mutual_info=0.250000 run_id=abcdef01 step=2\n", string(out))

	f.Colors = true
	out, err = f.Format(entry)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "\033[35m[STEP]\033[0m"))
}

func TestEventTag(t *testing.T) {
	assert.Equal(t, "RUN", eventTag("Learning run failed"))
	assert.Equal(t, "RUN", eventTag("Learning run matched"))
	assert.Equal(t, "STEP", eventTag("Equivalence check"))
	assert.Equal(t, "", eventTag("something else"))
}

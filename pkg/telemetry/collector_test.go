/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: collector_test.go
Description: Tests for the Prometheus collector wired as a learner reporter.
*/

package telemetry_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/lstar-probe/pkg/learner"
	"github.com/kleascm/lstar-probe/pkg/teacher"
	"github.com/kleascm/lstar-probe/pkg/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsRuns(t *testing.T) {
	c, err := telemetry.NewCollector()
	require.NoError(t, err)

	l, err := learner.New(learner.Options{MaxLength: 2, OverflowSlack: 0}, c)
	require.NoError(t, err)

	ctx := context.Background()
	for _, bits := range []string{"000", "001"} {
		v, err := teacher.Parse(bits)
		require.NoError(t, err)
		_, err = l.Run(ctx, v)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Runs.WithLabelValues("row_overflow")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Steps))
	assert.Equal(t, 1, testutil.CollectAndCount(c.StepsPerRun))
}

func TestCollectorWriteTextfile(t *testing.T) {
	c, err := telemetry.NewCollector()
	require.NoError(t, err)

	l, err := learner.New(learner.Options{MaxLength: 10, OverflowSlack: 11}, c)
	require.NoError(t, err)
	_, err = l.Run(context.Background(), teacher.AllReject(10))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lstar.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "lstar_runs_total"))
	assert.True(t, strings.Contains(string(data), "lstar_steps_total 1"))
}

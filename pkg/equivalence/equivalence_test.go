/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: equivalence_test.go
Description: Tests for the approximate equivalence query and counterexample selection.
*/

package equivalence_test

import (
	"testing"

	"github.com/kleascm/lstar-probe/pkg/equivalence"
	"github.com/kleascm/lstar-probe/pkg/table"
	"github.com/kleascm/lstar-probe/pkg/teacher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllRejectMatches(t *testing.T) {
	v := teacher.AllReject(10)
	tbl, err := table.New(v, 21)
	require.NoError(t, err)

	res, err := equivalence.Check(tbl, v)
	require.NoError(t, err)

	assert.True(t, res.Matched)
	assert.Equal(t, 0, res.Counterexample)
	assert.Equal(t, 22, res.Counts.TrueNegative)
	assert.Equal(t, 22, res.Counts.Probes())
	assert.Empty(t, res.LearnerAccepts)
}

func TestFirstDisagreementIsCounterexample(t *testing.T) {
	// t = 0 0 1: rows 0 and 1 both reject, the hypothesis loops on row 0
	v, err := teacher.Parse("001")
	require.NoError(t, err)
	tbl, err := table.New(v, 5)
	require.NoError(t, err)
	require.True(t, tbl.IsClosed())
	require.True(t, tbl.IsConsistent())

	res, err := equivalence.Check(tbl, v)
	require.NoError(t, err)

	assert.False(t, res.Matched)
	assert.Equal(t, 2, res.Counterexample)
	assert.Equal(t, 1, res.Counts.FalseNegative)
	assert.Equal(t, 0, res.Counts.FalsePositive)
	assert.Equal(t, 5, res.Counts.TrueNegative)
}

func TestFalsePositivesBeyondDomain(t *testing.T) {
	// t = 1 1: everything in the domain is accepted, the hypothesis keeps accepting past it
	v, err := teacher.Parse("11")
	require.NoError(t, err)
	tbl, err := table.New(v, 3)
	require.NoError(t, err)

	res, err := equivalence.Check(tbl, v)
	require.NoError(t, err)

	assert.False(t, res.Matched)
	assert.Equal(t, 2, res.Counterexample)
	assert.Equal(t, 2, res.Counts.TruePositive)
	assert.Equal(t, 2, res.Counts.FalsePositive)
	assert.Equal(t, []int{0, 1, 2, 3}, res.LearnerAccepts)
}

func TestSingleAcceptAtZero(t *testing.T) {
	v, err := teacher.Parse("10000000000")
	require.NoError(t, err)
	tbl, err := table.New(v, 21)
	require.NoError(t, err)
	require.NoError(t, tbl.GrowRow())
	require.True(t, tbl.IsClosed())

	res, err := equivalence.Check(tbl, v)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, []int{0}, res.LearnerAccepts)
	assert.Equal(t, 1, res.Counts.TruePositive)
	assert.Equal(t, 21, res.Counts.TrueNegative)
}

func TestMatchedCheckIsIdempotent(t *testing.T) {
	v, err := teacher.Parse("10000000000")
	require.NoError(t, err)
	tbl, err := table.New(v, 21)
	require.NoError(t, err)
	require.NoError(t, tbl.GrowRow())

	first, err := equivalence.Check(tbl, v)
	require.NoError(t, err)
	second, err := equivalence.Check(tbl, v)
	require.NoError(t, err)
	assert.True(t, first.Matched)
	assert.Equal(t, first, second)
}

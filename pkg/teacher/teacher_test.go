/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: teacher_test.go
Description: Tests for teacher vectors: parsing, membership queries and the
default-reject contract outside the declared domain.
*/

package teacher_test

import (
	"testing"

	"github.com/kleascm/lstar-probe/pkg/teacher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := teacher.Parse("10010001001")
	require.NoError(t, err)
	assert.Equal(t, 11, v.Len())
	assert.Equal(t, 10, v.MaxLength())
	assert.Equal(t, []int{0, 3, 7, 10}, v.Accepted())
	assert.Equal(t, "10010001001", v.String())

	v, err = teacher.Parse("1, 0, 1")
	require.NoError(t, err)
	assert.Equal(t, "101", v.String())
}

func TestParseErrors(t *testing.T) {
	_, err := teacher.Parse("")
	assert.ErrorIs(t, err, teacher.ErrEmptyVector)

	_, err = teacher.Parse(" , ")
	assert.ErrorIs(t, err, teacher.ErrEmptyVector)

	_, err = teacher.Parse("10x1")
	assert.ErrorIs(t, err, teacher.ErrInvalidSymbol)
}

func TestMembershipQueryDefaultsToReject(t *testing.T) {
	v, err := teacher.New([]bool{true, false, true})
	require.NoError(t, err)

	assert.True(t, v.MembershipQuery(0))
	assert.False(t, v.MembershipQuery(1))
	assert.True(t, v.MembershipQuery(2))

	// Outside the declared domain
	assert.False(t, v.MembershipQuery(3))
	assert.False(t, v.MembershipQuery(100))
	assert.False(t, v.MembershipQuery(-1))
}

func TestNewCopiesInput(t *testing.T) {
	bits := []bool{false, true}
	v, err := teacher.New(bits)
	require.NoError(t, err)

	bits[1] = false
	assert.True(t, v.MembershipQuery(1))

	out := v.Bits()
	out[1] = false
	assert.True(t, v.MembershipQuery(1))

	_, err = teacher.New(nil)
	assert.ErrorIs(t, err, teacher.ErrEmptyVector)
}

func TestAllReject(t *testing.T) {
	v := teacher.AllReject(10)
	assert.Equal(t, 11, v.Len())
	assert.Empty(t, v.Accepted())
	assert.Equal(t, "00000000000", v.String())
}

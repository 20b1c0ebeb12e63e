/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: teacher.go
Description: Teacher vectors for the unary L* learner. A teacher is an immutable
acceptance vector over query positions [0, MaxLength]; positions outside that domain
are rejected by default. Provides parsing from bit strings and membership queries.
*/

package teacher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyVector is returned when a teacher would have no positions at all.
	ErrEmptyVector = errors.New("teacher: empty vector")

	// ErrInvalidSymbol is returned by Parse for characters other than 0, 1 and separators.
	ErrInvalidSymbol = errors.New("teacher: invalid symbol")
)

// Oracle answers membership queries. The observation table and the equivalence
// finder only ever talk to the teacher through this interface.
type Oracle interface {
	MembershipQuery(position int) bool
}

// Vector is the acceptance vector of a teacher language.
// Index i tells whether the unary string of length i is accepted.
type Vector struct {
	bits []bool
}

// Compile-time check that Vector is an Oracle
var _ Oracle = Vector{}

// New creates a teacher from the given acceptance values. The slice is copied.
func New(bits []bool) (Vector, error) {
	if len(bits) == 0 {
		return Vector{}, ErrEmptyVector
	}
	cp := make([]bool, len(bits))
	copy(cp, bits)
	return Vector{bits: cp}, nil
}

// AllReject creates the empty language over positions [0, maxLength]
func AllReject(maxLength int) Vector {
	return Vector{bits: make([]bool, maxLength+1)}
}

// Parse reads a teacher from a bit string such as "10010001001" or "1,0,0,1".
// Spaces, commas and underscores are ignored.
func Parse(s string) (Vector, error) {
	bits := make([]bool, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		case ' ', ',', '_', '\t':
			// separator
		default:
			return Vector{}, fmt.Errorf("position %d (%q): %w", i, r, ErrInvalidSymbol)
		}
	}
	if len(bits) == 0 {
		return Vector{}, ErrEmptyVector
	}
	return Vector{bits: bits}, nil
}

// MembershipQuery reports whether the string of the given length is accepted.
// Queries outside [0, MaxLength] are never errors; they are rejected.
func (v Vector) MembershipQuery(position int) bool {
	if position < 0 || position >= len(v.bits) {
		return false
	}
	return v.bits[position]
}

// Len returns the number of positions in the declared domain (MaxLength+1)
func (v Vector) Len() int {
	return len(v.bits)
}

// MaxLength returns the largest position inside the declared domain
func (v Vector) MaxLength() int {
	return len(v.bits) - 1
}

// Accepted returns the accepted positions in ascending order
func (v Vector) Accepted() []int {
	accepted := make([]int, 0)
	for i, b := range v.bits {
		if b {
			accepted = append(accepted, i)
		}
	}
	return accepted
}

// Bits returns a copy of the acceptance values
func (v Vector) Bits() []bool {
	cp := make([]bool, len(v.bits))
	copy(cp, v.bits)
	return cp
}

// String renders the vector as a bit string, position 0 first
func (v Vector) String() string {
	var b strings.Builder
	b.Grow(len(v.bits))
	for _, bit := range v.bits {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

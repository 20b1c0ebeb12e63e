/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: counter.go
Description: Iterative enumeration of every teacher vector of a fixed length. Vectors
come out in depth-first order of the binary decision tree (position 0 is the most
significant bit, reject before accept) without recursion.
*/

package enumerate

import (
	"errors"
	"fmt"

	"github.com/kleascm/lstar-probe/pkg/teacher"
)

// MaxBits bounds the vector length so the leaf count fits in a uint64 counter
const MaxBits = 62

// ErrLength is returned for vector lengths outside [1, MaxBits]
var ErrLength = errors.New("enumerate: vector length out of range")

// Counter yields every vector of length n exactly once. Not safe for concurrent use.
type Counter struct {
	n    int
	next uint64
	end  uint64
}

// NewCounter creates a counter over all 2^n vectors of length n
func NewCounter(n int) (*Counter, error) {
	if n < 1 || n > MaxBits {
		return nil, fmt.Errorf("length %d: %w", n, ErrLength)
	}
	return &Counter{n: n, end: uint64(1) << uint(n)}, nil
}

// Total returns the number of leaves, 2^n
func (c *Counter) Total() uint64 {
	return c.end
}

// Remaining returns how many vectors have not been produced yet
func (c *Counter) Remaining() uint64 {
	return c.end - c.next
}

// Next returns the next vector, or false once every vector has been produced
func (c *Counter) Next() (teacher.Vector, bool) {
	if c.next >= c.end {
		return teacher.Vector{}, false
	}
	v := Vector(c.n, c.next)
	c.next++
	return v, true
}

// Vector decodes leaf index k of the length-n tree
func Vector(n int, k uint64) teacher.Vector {
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = (k>>uint(n-1-i))&1 == 1
	}
	v, _ := teacher.New(bits) // n >= 1, never empty
	return v
}

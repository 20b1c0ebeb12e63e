/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: information.go
Description: Information-theoretic measurements between hypothesis and teacher.
Mutual information between "teacher accepts" and "hypothesis accepts" under a uniform
distribution over the probed range, plus the b*d - a*c oracle heuristic.
*/

package metrics

import "math"

// DecreaseEpsilon is the tolerance below which a change in mutual information counts as a decrease
const DecreaseEpsilon = 1e-6

// Counts holds the confusion counts of one equivalence check
type Counts struct {
	TrueNegative  int `json:"true_negative"`
	FalsePositive int `json:"false_positive"`
	TruePositive  int `json:"true_positive"`
	FalseNegative int `json:"false_negative"`
}

// Probes returns the number of classified positions
func (c Counts) Probes() int {
	return c.TrueNegative + c.FalsePositive + c.TruePositive + c.FalseNegative
}

// Agrees reports whether the hypothesis made no mistakes
func (c Counts) Agrees() bool {
	return c.FalsePositive == 0 && c.FalseNegative == 0
}

// Proportions divides every count by the number of probes.
// A: true negative, B: false positive, C: true positive, D: false negative.
func (c Counts) Proportions() Proportions {
	n := float64(c.Probes())
	if n == 0 {
		return Proportions{}
	}
	return Proportions{
		A: float64(c.TrueNegative) / n,
		B: float64(c.FalsePositive) / n,
		C: float64(c.TruePositive) / n,
		D: float64(c.FalseNegative) / n,
	}
}

// Proportions is the joint distribution of (teacher, hypothesis) acceptance
type Proportions struct {
	A float64 `json:"a"` // true negative
	B float64 `json:"b"` // false positive
	C float64 `json:"c"` // true positive
	D float64 `json:"d"` // false negative
}

// XLog2X returns x*log2(x) with the convention 0*log2(0) = 0
func XLog2X(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log2(x)
}

// MutualInformation returns
//
//	-f(b+c) - f(a+d) - f(a+b) - f(c+d) + f(a) + f(b) + f(c) + f(d)
//
// where f = XLog2X. The result is in bits.
func MutualInformation(p Proportions) float64 {
	return -XLog2X(p.B+p.C) - XLog2X(p.A+p.D) - XLog2X(p.A+p.B) - XLog2X(p.C+p.D) +
		XLog2X(p.A) + XLog2X(p.B) + XLog2X(p.C) + XLog2X(p.D)
}

// Oracle returns the heuristic b*d - a*c. A negative value is a "good" oracle.
func Oracle(p Proportions) float64 {
	return p.B*p.D - p.A*p.C
}

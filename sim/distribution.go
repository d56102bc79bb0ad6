package sim

import (
	"fmt"
	"math/big"
)

// DepartureDistribution gives the per-tick departure probability of a car
// as a function of its dwell time in seconds.
type DepartureDistribution interface {
	// Density returns the probability density at x, 0 outside the support.
	Density(x int64) Probability
}

// TriangularDistribution is the triangular distribution over [lower, upper]
// peaking at mode. Density is computed exactly on integer arguments.
type TriangularDistribution struct {
	lower, mode, upper int64
}

// NewTriangularDistribution requires lower <= mode <= upper and lower < upper.
func NewTriangularDistribution(lower, mode, upper int64) (*TriangularDistribution, error) {
	if lower >= upper {
		return nil, fmt.Errorf("triangular lower bound %d must be below upper bound %d", lower, upper)
	}
	if mode < lower || mode > upper {
		return nil, fmt.Errorf("triangular mode %d outside [%d, %d]", mode, lower, upper)
	}
	return &TriangularDistribution{lower: lower, mode: mode, upper: upper}, nil
}

// DefaultDepartureDistribution is Triangular(0, maxStay/2, maxStay).
func DefaultDepartureDistribution(maxStay int64) (*TriangularDistribution, error) {
	return NewTriangularDistribution(0, maxStay/2, maxStay)
}

func (d *TriangularDistribution) Lower() int64 { return d.lower }
func (d *TriangularDistribution) Mode() int64  { return d.mode }
func (d *TriangularDistribution) Upper() int64 { return d.upper }

// Density returns
//
//	2(x-a) / ((b-a)(c-a))   for a <= x < c
//	2 / (b-a)               for x == c
//	2(b-x) / ((b-a)(b-c))   for c < x <= b
//
// and 0 outside [a, b].
func (d *TriangularDistribution) Density(x int64) Probability {
	a, b, c := d.lower, d.upper, d.mode
	switch {
	case x < a || x > b:
		return Probability{}
	case x == c:
		return ratProbability(new(big.Rat).SetFrac(big.NewInt(2), span(a, b)))
	case x < c:
		num := new(big.Int).Lsh(span(a, x), 1)
		den := new(big.Int).Mul(span(a, b), span(a, c))
		return ratProbability(new(big.Rat).SetFrac(num, den))
	default:
		num := new(big.Int).Lsh(span(x, b), 1)
		den := new(big.Int).Mul(span(a, b), span(c, b))
		return ratProbability(new(big.Rat).SetFrac(num, den))
	}
}

// span returns hi-lo without int64 overflow.
func span(lo, hi int64) *big.Int {
	return new(big.Int).Sub(big.NewInt(hi), big.NewInt(lo))
}

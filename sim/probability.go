package sim

import (
	"fmt"
	"math/big"
)

// Probability is an exact, non-negative ratio.
// The zero value is probability 0. Values are immutable: every method that
// exposes the ratio returns a copy.
//
// Arrival probabilities are constructed through NewProbability and lie in
// [0, 1]. Densities from a DepartureDistribution use the same type and are
// not bounded above; samplers treat anything >= 1 as certain.
type Probability struct {
	r *big.Rat
}

// NewProbability returns num/den, rejecting values outside [0, 1].
func NewProbability(num, den int64) (Probability, error) {
	if den <= 0 {
		return Probability{}, fmt.Errorf("probability denominator must be positive, got %d", den)
	}
	if num < 0 || num > den {
		return Probability{}, fmt.Errorf("probability %d/%d outside [0, 1]", num, den)
	}
	return Probability{r: big.NewRat(num, den)}, nil
}

// ratProbability wraps r without range checks. r must be non-negative and
// must not be mutated afterwards.
func ratProbability(r *big.Rat) Probability {
	return Probability{r: r}
}

// Certain is the probability 1.
func Certain() Probability {
	return Probability{r: big.NewRat(1, 1)}
}

func (p Probability) rat() *big.Rat {
	if p.r == nil {
		return new(big.Rat)
	}
	return p.r
}

// Rat returns a copy of the underlying ratio.
func (p Probability) Rat() *big.Rat {
	return new(big.Rat).Set(p.rat())
}

// IsZero reports whether p == 0.
func (p Probability) IsZero() bool {
	return p.rat().Sign() == 0
}

// IsCertain reports whether p >= 1.
func (p Probability) IsCertain() bool {
	return p.rat().Cmp(big.NewRat(1, 1)) >= 0
}

// Cmp compares p and q and returns -1, 0 or +1.
func (p Probability) Cmp(q Probability) int {
	return p.rat().Cmp(q.rat())
}

// Float64 returns the nearest float64 value, for reporting only.
func (p Probability) Float64() float64 {
	f, _ := p.rat().Float64()
	return f
}

func (p Probability) String() string {
	return p.rat().RatString()
}

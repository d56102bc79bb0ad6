package sim

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriangularDistribution_Validation(t *testing.T) {
	_, err := NewTriangularDistribution(0, 5, 10)
	assert.NoError(t, err)
	_, err = NewTriangularDistribution(0, 0, 10)
	assert.NoError(t, err, "mode at the lower bound is allowed")
	_, err = NewTriangularDistribution(0, 10, 10)
	assert.NoError(t, err, "mode at the upper bound is allowed")

	_, err = NewTriangularDistribution(10, 10, 10)
	assert.Error(t, err, "degenerate support")
	_, err = NewTriangularDistribution(0, 11, 10)
	assert.Error(t, err, "mode above upper")
	_, err = NewTriangularDistribution(0, -1, 10)
	assert.Error(t, err, "mode below lower")
}

func TestTriangularDistribution_Density(t *testing.T) {
	// GIVEN Triangular(0, 4, 8): peak density 2/8 = 1/4 at x = 4
	d, err := NewTriangularDistribution(0, 4, 8)
	require.NoError(t, err)

	tests := []struct {
		x    int64
		want *big.Rat
	}{
		{-1, big.NewRat(0, 1)},
		{0, big.NewRat(0, 1)},
		{2, big.NewRat(1, 8)}, // 2*2/(8*4)
		{4, big.NewRat(1, 4)},
		{6, big.NewRat(1, 8)}, // 2*2/(8*4)
		{8, big.NewRat(0, 1)},
		{9, big.NewRat(0, 1)},
	}
	for _, tt := range tests {
		got := d.Density(tt.x)
		assert.Equal(t, 0, got.Rat().Cmp(tt.want), "Density(%d) = %v, want %v", tt.x, got, tt.want)
	}
}

func TestTriangularDistribution_DensityIntegratesToOne(t *testing.T) {
	// Summing the density over the integer support approximates the integral.
	d, err := DefaultDepartureDistribution(MaxParkingDuration)
	require.NoError(t, err)

	sum := new(big.Rat)
	for x := d.Lower(); x <= d.Upper(); x++ {
		sum.Add(sum, d.Density(x).Rat())
	}
	// With a=0 and b=2c the trapezoid sum over integers is exactly 1.
	assert.Equal(t, 0, sum.Cmp(big.NewRat(1, 1)), "sum = %v", sum.RatString())
}

func TestDefaultDepartureDistribution_Bounds(t *testing.T) {
	d, err := DefaultDepartureDistribution(MaxParkingDuration)
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Lower())
	assert.Equal(t, int64(4*SecondsPerHour), d.Mode())
	assert.Equal(t, int64(MaxParkingDuration), d.Upper())
}

func TestTriangularDistribution_WideSupport_DensityStaysNonNegative(t *testing.T) {
	// GIVEN bounds whose int64 difference would overflow
	d, err := NewTriangularDistribution(-9e18, 0, 9e18)
	require.NoError(t, err)

	// WHEN the density is evaluated across the support
	// THEN it is the exact non-negative triangle value
	want := new(big.Rat).SetFrac(big.NewInt(2), new(big.Int).Mul(big.NewInt(18), big.NewInt(1e18)))
	assert.Equal(t, 0, d.Density(0).Rat().Cmp(want), "Density(0) = %v", d.Density(0))
	for _, x := range []int64{-9e18, -1, 1, 9e18 - 1, 9e18} {
		assert.GreaterOrEqual(t, d.Density(x).Rat().Sign(), 0, "Density(%d) = %v", x, d.Density(x))
	}
	assert.True(t, d.Density(-9e18).IsZero())
}

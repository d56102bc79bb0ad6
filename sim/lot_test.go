package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParkingLot_RejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewParkingLot(capacity)
		assert.Error(t, err, "capacity %d", capacity)
	}
}

func TestParkingLot_Park_UntilFull(t *testing.T) {
	// GIVEN a lot with room for two cars
	lot := mustLot(2)

	// WHEN three cars try to park
	require.NoError(t, lot.Park("A", 0))
	require.NoError(t, lot.Park("B", 5))
	err := lot.Park("C", 9)

	// THEN the third is refused with ErrLotFull and occupancy stays at capacity
	assert.ErrorIs(t, err, ErrLotFull)
	assert.Equal(t, 2, lot.Occupancy())
	assert.Equal(t, 2, lot.Capacity())
	assert.Equal(t, "B", lot.SpotAt(1).CarID)
	assert.Equal(t, int64(5), lot.SpotAt(1).Timestamp)
}

func TestParkingLot_RemoveAt_ShiftsLaterOccupants(t *testing.T) {
	// GIVEN a lot holding [A, B, C]
	lot := mustLot(3)
	require.NoError(t, lot.Park("A", 0))
	require.NoError(t, lot.Park("B", 1))
	require.NoError(t, lot.Park("C", 2))

	// WHEN the occupant at index 0 is removed
	removed := lot.RemoveAt(0)

	// THEN B and C move down one position
	assert.Equal(t, "A", removed.CarID)
	assert.Equal(t, []string{"B", "C"}, spotIDs(lot.Occupants()))
	assert.Equal(t, "B", lot.SpotAt(0).CarID)

	// AND the freed space can be reused
	assert.NoError(t, lot.Park("D", 3))
}

func TestParkingLot_OutOfRangeIndex_Panics(t *testing.T) {
	lot := mustLot(1)
	require.NoError(t, lot.Park("A", 0))
	assert.Panics(t, func() { lot.SpotAt(1) })
	assert.Panics(t, func() { lot.SpotAt(-1) })
	assert.Panics(t, func() { lot.RemoveAt(1) })
}

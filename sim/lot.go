package sim

import (
	"errors"
	"fmt"
)

// ErrLotFull is returned by Lot.Park when every space is taken.
// It is normal backpressure, not a failure: the simulator retries the same
// waiting car on the next tick.
var ErrLotFull = errors.New("parking lot is full")

// Lot is the capacity-bounded store of parked cars the simulator drives.
// Occupants are addressed by position; RemoveAt shifts every later occupant
// down by one.
type Lot interface {
	// Capacity returns the maximum number of cars the lot holds.
	Capacity() int
	// Occupancy returns the number of parked cars.
	Occupancy() int
	// SpotAt returns the occupant at index, 0 <= index < Occupancy().
	SpotAt(index int) *Spot
	// Park admits carID stamped at timestamp, or returns ErrLotFull.
	Park(carID string, timestamp int64) error
	// RemoveAt removes and returns the occupant at index.
	RemoveAt(index int) *Spot
}

// ParkingLot is the slice-backed Lot used by the simulator.
// Occupants are kept in parking order.
type ParkingLot struct {
	capacity  int
	occupants []*Spot
}

// NewParkingLot creates an empty lot holding at most capacity cars.
func NewParkingLot(capacity int) (*ParkingLot, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("lot capacity must be positive, got %d", capacity)
	}
	return &ParkingLot{
		capacity:  capacity,
		occupants: make([]*Spot, 0, capacity),
	}, nil
}

func (pl *ParkingLot) Capacity() int {
	return pl.capacity
}

func (pl *ParkingLot) Occupancy() int {
	return len(pl.occupants)
}

// SpotAt panics on an out-of-range index: the simulator's scan must never
// produce one.
func (pl *ParkingLot) SpotAt(index int) *Spot {
	if index < 0 || index >= len(pl.occupants) {
		panic(fmt.Sprintf("SpotAt: index %d out of range [0, %d)", index, len(pl.occupants)))
	}
	return pl.occupants[index]
}

func (pl *ParkingLot) Park(carID string, timestamp int64) error {
	if len(pl.occupants) >= pl.capacity {
		return ErrLotFull
	}
	pl.occupants = append(pl.occupants, NewSpot(carID, timestamp))
	return nil
}

func (pl *ParkingLot) RemoveAt(index int) *Spot {
	if index < 0 || index >= len(pl.occupants) {
		panic(fmt.Sprintf("RemoveAt: index %d out of range [0, %d)", index, len(pl.occupants)))
	}
	removed := pl.occupants[index]
	copy(pl.occupants[index:], pl.occupants[index+1:])
	pl.occupants[len(pl.occupants)-1] = nil
	pl.occupants = pl.occupants[:len(pl.occupants)-1]
	return removed
}

// Occupants returns the parked spots in parking order.
// The returned slice is internal storage and MUST NOT be modified.
func (pl *ParkingLot) Occupants() []*Spot {
	return pl.occupants
}

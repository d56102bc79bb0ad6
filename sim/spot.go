package sim

import "fmt"

// Spot pairs a car identifier with a timestamp in simulated seconds.
// The timestamp is the arrival second while the car waits or is parked,
// and is overwritten with the departure second once the car leaves the lot.
type Spot struct {
	CarID     string
	Timestamp int64
}

// NewSpot creates a Spot for carID stamped at timestamp.
func NewSpot(carID string, timestamp int64) *Spot {
	return &Spot{CarID: carID, Timestamp: timestamp}
}

func (s *Spot) String() string {
	return fmt.Sprintf("%s@%d", s.CarID, s.Timestamp)
}

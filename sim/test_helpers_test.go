package sim

import "fmt"

// scriptedSource answers EventOccurred from a fixed script, then from
// fallback once the script runs out. Every probability it is asked about is
// recorded in calls.
type scriptedSource struct {
	script   []bool
	fallback bool
	calls    []Probability
	nextID   int
}

func (s *scriptedSource) EventOccurred(p Probability) bool {
	i := len(s.calls)
	s.calls = append(s.calls, p)
	if i < len(s.script) {
		return s.script[i]
	}
	return s.fallback
}

func (s *scriptedSource) GenerateCarID(length int) string {
	s.nextID++
	id := fmt.Sprintf("C%0*d", length-1, s.nextID)
	return id
}

// predicateSource answers EventOccurred with decide(p).
type predicateSource struct {
	decide func(p Probability) bool
	nextID int
}

func (s *predicateSource) EventOccurred(p Probability) bool { return s.decide(p) }

func (s *predicateSource) GenerateCarID(length int) string {
	s.nextID++
	return fmt.Sprintf("P%0*d", length-1, s.nextID)
}

// constantDensity returns the same density for every dwell time.
type constantDensity struct {
	p Probability
}

func (d constantDensity) Density(int64) Probability { return d.p }

func mustLot(capacity int) *ParkingLot {
	lot, err := NewParkingLot(capacity)
	if err != nil {
		panic(err)
	}
	return lot
}

func mustSimulator(cfg SimConfig, lot Lot, random RandomSource, dist DepartureDistribution) *Simulator {
	s, err := NewSimulator(cfg, lot, random, dist)
	if err != nil {
		panic(err)
	}
	return s
}

// spotIDs returns the car identifiers of spots in order.
func spotIDs(spots []*Spot) []string {
	ids := make([]string, 0, len(spots))
	for _, s := range spots {
		ids = append(ids, s.CarID)
	}
	return ids
}

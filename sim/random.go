package sim

import (
	"math/big"
	"strings"
)

// PlateAlphabet is the character set car identifiers are drawn from.
const PlateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomSource is the simulator's only source of nondeterminism.
type RandomSource interface {
	// EventOccurred reports whether an event with probability p happens
	// this tick.
	EventOccurred(p Probability) bool
	// GenerateCarID returns a fresh identifier of the given length.
	GenerateCarID(length int) string
}

// SeededRandomSource is the RandomSource backed by a PartitionedRNG.
// Event sampling and identifier generation use separate subsystems so that
// the identifier length never shifts the event stream.
type SeededRandomSource struct {
	rng *PartitionedRNG
}

// NewSeededRandomSource creates a RandomSource for key.
func NewSeededRandomSource(key SimulationKey) *SeededRandomSource {
	return &SeededRandomSource{rng: NewPartitionedRNG(key)}
}

// EventOccurred draws a uniform integer u in [0, den) and reports u < num,
// which happens with probability exactly num/den. Zero and certain
// probabilities return without consuming a draw.
func (s *SeededRandomSource) EventOccurred(p Probability) bool {
	if p.IsZero() {
		return false
	}
	if p.IsCertain() {
		return true
	}
	events := s.rng.ForSubsystem(SubsystemEvents)
	r := p.rat()
	num, den := r.Num(), r.Denom()
	if num.IsInt64() && den.IsInt64() {
		return events.Int63n(den.Int64()) < num.Int64()
	}
	u := new(big.Int).Rand(events, den)
	return u.Cmp(num) < 0
}

// GenerateCarID returns length characters drawn uniformly from PlateAlphabet.
func (s *SeededRandomSource) GenerateCarID(length int) string {
	plates := s.rng.ForSubsystem(SubsystemPlates)
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(PlateAlphabet[plates.Intn(len(PlateAlphabet))])
	}
	return sb.String()
}

// Key returns the SimulationKey the source was seeded with.
func (s *SeededRandomSource) Key() SimulationKey {
	return s.rng.Key()
}

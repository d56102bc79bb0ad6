// Package scenario loads parking simulation scenarios from YAML.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/parking-sim/parking-sim/sim"
)

// Scenario is the top-level scenario configuration.
// Loaded from YAML via Load(path). Optional fields are pointers so an
// explicit zero is kept and validated; absent ones are filled by Defaults().
type Scenario struct {
	Seed               *int64        `yaml:"seed,omitempty"`
	ArrivalRatePerHour int64         `yaml:"arrival_rate_per_hour"`
	Capacity           int           `yaml:"capacity"`
	Steps              *int64        `yaml:"steps,omitempty"`
	PlateLength        *int          `yaml:"plate_length,omitempty"`
	MaxStaySeconds     *int64        `yaml:"max_stay_seconds,omitempty"`
	Departure          *TriangleSpec `yaml:"departure,omitempty"`
	InitialOccupants   []SpotSpec    `yaml:"initial_occupants,omitempty"`
	Waiting            []SpotSpec    `yaml:"waiting,omitempty"`
}

// TriangleSpec parameterizes the triangular departure density in seconds.
type TriangleSpec struct {
	Lower int64 `yaml:"lower"`
	Mode  int64 `yaml:"mode"`
	Upper int64 `yaml:"upper"`
}

// SpotSpec is a car present before the first tick.
type SpotSpec struct {
	CarID     string `yaml:"car_id"`
	Timestamp int64  `yaml:"timestamp"`
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML bytes and applies defaults.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	s.Defaults()
	return &s, nil
}

// Defaults fills absent optional fields in place. The seed is left unset so
// the caller can supply its own.
func (s *Scenario) Defaults() {
	if s.Steps == nil {
		s.Steps = ptr(int64(sim.SimulationDuration))
	}
	if s.PlateLength == nil {
		s.PlateLength = ptr(sim.PlateNumLength)
	}
	if s.MaxStaySeconds == nil {
		s.MaxStaySeconds = ptr(int64(sim.MaxParkingDuration))
	}
}

// SeedOr returns the scenario seed, or fallback when the file sets none.
func (s *Scenario) SeedOr(fallback int64) int64 {
	return valueOr(s.Seed, fallback)
}

func ptr[T any](v T) *T { return &v }

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Validate checks that the scenario describes a runnable simulation.
func (s *Scenario) Validate() error {
	if err := s.SimConfig().Validate(); err != nil {
		return err
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", s.Capacity)
	}
	if len(s.InitialOccupants) > s.Capacity {
		return fmt.Errorf("%d initial occupants exceed capacity %d", len(s.InitialOccupants), s.Capacity)
	}
	if _, err := s.DepartureDistribution(); err != nil {
		return fmt.Errorf("departure: %w", err)
	}
	for i, o := range s.InitialOccupants {
		if err := validateSpot(o, fmt.Sprintf("initial_occupants[%d]", i)); err != nil {
			return err
		}
	}
	for i, w := range s.Waiting {
		if err := validateSpot(w, fmt.Sprintf("waiting[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validateSpot(s SpotSpec, prefix string) error {
	if s.CarID == "" {
		return fmt.Errorf("%s: car_id is required", prefix)
	}
	if s.Timestamp > 0 {
		return fmt.Errorf("%s: timestamp %d is after the first tick", prefix, s.Timestamp)
	}
	return nil
}

// SimConfig returns the simulator configuration described by the scenario.
func (s *Scenario) SimConfig() sim.SimConfig {
	return sim.SimConfig{
		PerHourArrivalRate: s.ArrivalRatePerHour,
		Steps:              valueOr(s.Steps, int64(sim.SimulationDuration)),
		PlateLength:        valueOr(s.PlateLength, sim.PlateNumLength),
		MaxParkingDuration: s.maxStay(),
	}
}

// DepartureDistribution returns the configured triangle, or the default
// Triangular(0, max/2, max) when none is given.
func (s *Scenario) DepartureDistribution() (*sim.TriangularDistribution, error) {
	if s.Departure == nil {
		return sim.DefaultDepartureDistribution(s.maxStay())
	}
	return sim.NewTriangularDistribution(s.Departure.Lower, s.Departure.Mode, s.Departure.Upper)
}

func (s *Scenario) maxStay() int64 {
	return valueOr(s.MaxStaySeconds, int64(sim.MaxParkingDuration))
}

// NewLot builds a lot of the scenario's capacity holding the initial occupants.
func (s *Scenario) NewLot() (*sim.ParkingLot, error) {
	lot, err := sim.NewParkingLot(s.Capacity)
	if err != nil {
		return nil, err
	}
	for _, o := range s.InitialOccupants {
		if err := lot.Park(o.CarID, o.Timestamp); err != nil {
			return nil, fmt.Errorf("parking initial occupant %s: %w", o.CarID, err)
		}
	}
	return lot, nil
}

// WaitingSpots returns the initially queued cars in queue order.
func (s *Scenario) WaitingSpots() []*sim.Spot {
	spots := make([]*sim.Spot, 0, len(s.Waiting))
	for _, w := range s.Waiting {
		spots = append(spots, sim.NewSpot(w.CarID, w.Timestamp))
	}
	return spots
}

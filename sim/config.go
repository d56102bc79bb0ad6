package sim

import "fmt"

const (
	// PlateNumLength is the default length of generated car identifiers.
	PlateNumLength = 3
	// SecondsPerHour converts a per-hour arrival rate to a per-tick probability.
	SecondsPerHour = 3600
	// MaxParkingDuration is the dwell time after which a car is evicted.
	MaxParkingDuration = 8 * SecondsPerHour
	// SimulationDuration is one simulated day.
	SimulationDuration = 24 * SecondsPerHour
)

// SimConfig groups the parameters fixed for the lifetime of a run.
type SimConfig struct {
	PerHourArrivalRate int64 // cars per hour, 0..SecondsPerHour
	Steps              int64 // ticks to simulate (>= 0)
	PlateLength        int   // generated identifier length (> 0)
	MaxParkingDuration int64 // dwell above which a car is forced out (> 0)
}

// NewSimConfig returns a config with the default identifier length and
// maximum stay.
func NewSimConfig(perHourArrivalRate, steps int64) SimConfig {
	return SimConfig{
		PerHourArrivalRate: perHourArrivalRate,
		Steps:              steps,
		PlateLength:        PlateNumLength,
		MaxParkingDuration: MaxParkingDuration,
	}
}

// Validate rejects configurations the simulator cannot run.
func (c SimConfig) Validate() error {
	if c.PerHourArrivalRate < 0 {
		return fmt.Errorf("arrival rate must be non-negative, got %d", c.PerHourArrivalRate)
	}
	if c.PerHourArrivalRate > SecondsPerHour {
		return fmt.Errorf("arrival rate %d/h exceeds one car per second", c.PerHourArrivalRate)
	}
	if c.Steps < 0 {
		return fmt.Errorf("step count must be non-negative, got %d", c.Steps)
	}
	if c.PlateLength <= 0 {
		return fmt.Errorf("plate length must be positive, got %d", c.PlateLength)
	}
	if c.MaxParkingDuration <= 0 {
		return fmt.Errorf("max parking duration must be positive, got %d", c.MaxParkingDuration)
	}
	return nil
}

// ArrivalProbability returns PerHourArrivalRate/SecondsPerHour exactly.
func (c SimConfig) ArrivalProbability() (Probability, error) {
	return NewProbability(c.PerHourArrivalRate, SecondsPerHour)
}

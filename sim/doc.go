// Package sim provides the time-stepped parking lot simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - spot.go: the car/timestamp record that moves between queues and the lot
//   - lot.go: the capacity-bounded Lot contract and the ParkingLot implementation
//   - simulator.go: the tick loop (arrival, departure scan, admission, clock advance)
//
// # Architecture
//
// The engine owns the clock and the incoming/outgoing SpotQueues and mutates a
// Lot it is handed. Nondeterminism sits behind two small interfaces so tests
// can substitute scripted stubs:
//   - RandomSource: EventOccurred(Probability) and GenerateCarID(length)
//   - DepartureDistribution: Density(dwell) as an exact Probability
//
// Probabilities are exact ratios (math/big.Rat). The arrival probability is
// perHourRate/3600 and the departure probability of a car is the triangular
// density at its dwell time, used as-is as a per-tick hazard.
//
// Sub-packages:
//   - sim/trace/: admission and departure decision records
//   - sim/scenario/: YAML scenario files
//   - sim/telemetry/: OpenTelemetry metrics and an instrumented Lot
package sim

// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/parking-sim/parking-sim/sim/trace"
)

// reasonLotFull is the trace reason for a refused admission.
const reasonLotFull = "lot full"

// Simulator is the core object that holds the simulation clock, the two
// queues, and the lot it drives one tick at a time.
//
// Each tick runs, in order: arrival sampling, the departure scan over the
// lot, one admission attempt for the front of the incoming queue, and the
// clock advance. The order is fixed; downstream statistics depend on it.
type Simulator struct {
	clock              int64
	config             SimConfig
	arrivalProbability Probability
	lot                Lot
	random             RandomSource
	departures         DepartureDistribution
	// incoming holds arrivals waiting for a free space, in arrival order
	incoming *SpotQueue
	// outgoing holds cars that left the lot, stamped with their departure tick
	outgoing *SpotQueue
	Metrics  *Metrics
	trace    *trace.SimulationTrace
}

// NewSimulator validates cfg and builds a simulator at clock 0 with both
// queues empty. The lot may already hold cars.
func NewSimulator(cfg SimConfig, lot Lot, random RandomSource, departures DepartureDistribution) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if lot == nil {
		return nil, errors.New("simulator requires a lot")
	}
	if random == nil {
		return nil, errors.New("simulator requires a random source")
	}
	if departures == nil {
		return nil, errors.New("simulator requires a departure distribution")
	}
	p, err := cfg.ArrivalProbability()
	if err != nil {
		return nil, fmt.Errorf("arrival probability: %w", err)
	}
	return &Simulator{
		clock:              0,
		config:             cfg,
		arrivalProbability: p,
		lot:                lot,
		random:             random,
		departures:         departures,
		incoming:           &SpotQueue{},
		outgoing:           &SpotQueue{},
		Metrics:            NewMetrics(),
	}, nil
}

// NewDefaultSimulator builds a simulator with the default identifier length,
// maximum stay and triangular departure density, drawing randomness from a
// SeededRandomSource for key.
func NewDefaultSimulator(lot Lot, perHourArrivalRate, steps int64, key SimulationKey) (*Simulator, error) {
	dist, err := DefaultDepartureDistribution(MaxParkingDuration)
	if err != nil {
		return nil, err
	}
	return NewSimulator(NewSimConfig(perHourArrivalRate, steps), lot, NewSeededRandomSource(key), dist)
}

// EnableTrace starts recording decisions when cfg asks for them.
func (sim *Simulator) EnableTrace(cfg trace.TraceConfig) {
	if cfg.Enabled() {
		sim.trace = trace.NewSimulationTrace(cfg)
	}
}

// Trace returns the decision trace, or nil when tracing is off.
func (sim *Simulator) Trace() *trace.SimulationTrace {
	return sim.trace
}

// InjectArrival enqueues an already-waiting car at the back of the incoming
// queue. Its timestamp is kept as the time it started waiting.
func (sim *Simulator) InjectArrival(s *Spot) {
	sim.incoming.Enqueue(s)
	sim.Metrics.InjectedArrivals++
	sim.Metrics.PeakIncomingQueue = max(sim.Metrics.PeakIncomingQueue, sim.incoming.Len())
}

// Run simulates until the clock reaches the configured step count.
// A finished simulator is not restarted: calling Run again does nothing.
func (sim *Simulator) Run() {
	logrus.Infof("[tick %07d] Simulation started: steps=%d, arrival probability=%v, capacity=%d",
		sim.clock, sim.config.Steps, sim.arrivalProbability, sim.lot.Capacity())
	for sim.clock < sim.config.Steps {
		sim.sampleArrival()
		sim.scanDepartures()
		sim.tryAdmit()
		sim.recordOccupancy()
		sim.clock++
	}
	sim.Metrics.SimEndedTime = sim.clock
	logrus.Infof("[tick %07d] Simulation ended: occupancy=%d, incoming=%d, outgoing=%d",
		sim.clock, sim.lot.Occupancy(), sim.incoming.Len(), sim.outgoing.Len())
}

// sampleArrival enqueues at most one new car this tick.
func (sim *Simulator) sampleArrival() {
	if !sim.random.EventOccurred(sim.arrivalProbability) {
		return
	}
	s := NewSpot(sim.random.GenerateCarID(sim.config.PlateLength), sim.clock)
	sim.incoming.Enqueue(s)
	sim.Metrics.Arrivals++
	sim.Metrics.PeakIncomingQueue = max(sim.Metrics.PeakIncomingQueue, sim.incoming.Len())
	logrus.Debugf("[tick %07d] car %s arrived, incoming queue=%d", sim.clock, s.CarID, sim.incoming.Len())
}

// scanDepartures evaluates every parked car exactly once. A car whose dwell
// exceeds the maximum stay leaves unconditionally; otherwise the departure
// density at its dwell is sampled as this tick's leaving probability.
func (sim *Simulator) scanDepartures() {
	for i := 0; i < sim.lot.Occupancy(); i++ {
		s := sim.lot.SpotAt(i)
		dwell := sim.clock - s.Timestamp

		forced := dwell > sim.config.MaxParkingDuration
		if !forced && !sim.random.EventOccurred(sim.departures.Density(dwell)) {
			continue
		}

		sim.lot.RemoveAt(i)
		s.Timestamp = sim.clock
		sim.outgoing.Enqueue(s)

		sim.Metrics.Departures++
		sim.Metrics.TotalDwellTicks += dwell
		if forced {
			sim.Metrics.ForcedEvictions++
		}
		if sim.trace != nil {
			sim.trace.RecordDeparture(trace.DepartureRecord{
				CarID:      s.CarID,
				Clock:      sim.clock,
				DwellTicks: dwell,
				Forced:     forced,
			})
		}
		logrus.Debugf("[tick %07d] car %s left after %d ticks (forced=%v)", sim.clock, s.CarID, dwell, forced)

		// RemoveAt shifted the next occupant into position i.
		i--
	}
}

// tryAdmit makes one attempt to park the car at the front of the incoming
// queue. A full lot leaves it at the front for the next tick.
func (sim *Simulator) tryAdmit() {
	if sim.incoming.IsEmpty() {
		return
	}
	front := sim.incoming.Peek()
	wait := sim.clock - front.Timestamp

	err := sim.lot.Park(front.CarID, front.Timestamp)
	switch {
	case err == nil:
		sim.incoming.Dequeue()
		sim.Metrics.Admissions++
		sim.Metrics.TotalWaitTicks += wait
		logrus.Debugf("[tick %07d] car %s admitted after waiting %d ticks", sim.clock, front.CarID, wait)
	case errors.Is(err, ErrLotFull):
		sim.Metrics.RefusedAdmissions++
	default:
		panic(fmt.Sprintf("tryAdmit: parking car %s: %v", front.CarID, err))
	}

	if sim.trace != nil {
		record := trace.AdmissionRecord{
			CarID:     front.CarID,
			Clock:     sim.clock,
			Admitted:  err == nil,
			WaitTicks: wait,
		}
		if err != nil {
			record.Reason = reasonLotFull
		}
		sim.trace.RecordAdmission(record)
	}
}

func (sim *Simulator) recordOccupancy() {
	occupancy := sim.lot.Occupancy()
	sim.Metrics.OccupancySum += int64(occupancy)
	sim.Metrics.PeakOccupancy = max(sim.Metrics.PeakOccupancy, occupancy)
}

// Clock returns the number of ticks simulated so far.
func (sim *Simulator) Clock() int64 { return sim.clock }

// Steps returns the configured number of ticks.
func (sim *Simulator) Steps() int64 { return sim.config.Steps }

// Config returns the configuration the simulator was built with.
func (sim *Simulator) Config() SimConfig { return sim.config }

// ArrivalProbability returns the exact per-tick arrival probability.
func (sim *Simulator) ArrivalProbability() Probability { return sim.arrivalProbability }

// Lot returns the lot being simulated.
func (sim *Simulator) Lot() Lot { return sim.lot }

// Finished reports whether the clock has reached the step count.
func (sim *Simulator) Finished() bool { return sim.clock >= sim.config.Steps }

// IncomingQueueSize returns the number of cars waiting to enter.
func (sim *Simulator) IncomingQueueSize() int { return sim.incoming.Len() }

// OutgoingQueueSize returns the number of cars that have left the lot.
func (sim *Simulator) OutgoingQueueSize() int { return sim.outgoing.Len() }

// Waiting returns the incoming queue in FIFO order. Read-only.
func (sim *Simulator) Waiting() []*Spot { return sim.incoming.Items() }

// Departed returns the outgoing queue in departure order. Read-only.
func (sim *Simulator) Departed() []*Spot { return sim.outgoing.Items() }

// Report summarizes the run for SaveResults.
func (sim *Simulator) Report(key SimulationKey) *Report {
	m := sim.Metrics
	capacity := sim.lot.Capacity()
	return &Report{
		RunID:              RunID(key, sim.config, capacity).String(),
		Seed:               int64(key),
		ArrivalRatePerHour: sim.config.PerHourArrivalRate,
		ArrivalProbability: sim.arrivalProbability.String(),
		Capacity:           capacity,
		Steps:              sim.config.Steps,
		MaxParkingDuration: sim.config.MaxParkingDuration,
		Arrivals:           m.Arrivals,
		InjectedArrivals:   m.InjectedArrivals,
		Admissions:         m.Admissions,
		RefusedAdmissions:  m.RefusedAdmissions,
		Departures:         m.Departures,
		ForcedEvictions:    m.ForcedEvictions,
		FinalOccupancy:     sim.lot.Occupancy(),
		FinalIncomingQueue: sim.incoming.Len(),
		FinalOutgoingQueue: sim.outgoing.Len(),
		PeakIncomingQueue:  m.PeakIncomingQueue,
		PeakOccupancy:      m.PeakOccupancy,
		MeanUtilization:    m.MeanUtilization(sim.config.Steps, capacity),
		MeanWaitTicks:      m.MeanWait(),
		MeanDwellTicks:     m.MeanDwell(),
	}
}

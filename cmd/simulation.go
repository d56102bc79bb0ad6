package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/parking-sim/parking-sim/sim"
	"github.com/parking-sim/parking-sim/sim/scenario"
	"github.com/parking-sim/parking-sim/sim/telemetry"
	"github.com/parking-sim/parking-sim/sim/trace"
)

// runOptions is the flag-level description of one simulation.
type runOptions struct {
	Seed         int64
	SeedSet      bool // --seed was given explicitly
	ArrivalRate  int64
	Capacity     int
	Steps        int64
	PlateLength  int
	MaxStay      int64
	ScenarioPath string
	TraceLevel   string
	OTLPEndpoint string
}

// simRun is a ready-to-run simulator plus the resources it holds.
type simRun struct {
	Sim       *sim.Simulator
	Key       sim.SimulationKey
	telemetry *telemetry.Provider
}

// Close flushes telemetry, if any.
func (r *simRun) Close(ctx context.Context) error {
	if r.telemetry == nil {
		return nil
	}
	return r.telemetry.Shutdown(ctx)
}

// closeOnError releases telemetry after a failed setup and returns err.
func (r *simRun) closeOnError(ctx context.Context, err error) error {
	if cerr := r.Close(ctx); cerr != nil {
		logrus.Warnf("telemetry shutdown: %v", cerr)
	}
	return err
}

// scenarioFromOptions loads the scenario file, or describes the flags as a
// scenario when none is given. A file without a seed takes --seed.
func scenarioFromOptions(opts runOptions) (*scenario.Scenario, error) {
	if opts.ScenarioPath == "" {
		return &scenario.Scenario{
			Seed:               &opts.Seed,
			ArrivalRatePerHour: opts.ArrivalRate,
			Capacity:           opts.Capacity,
			Steps:              &opts.Steps,
			PlateLength:        &opts.PlateLength,
			MaxStaySeconds:     &opts.MaxStay,
		}, nil
	}
	sc, err := scenario.Load(opts.ScenarioPath)
	if err != nil {
		return nil, err
	}
	switch {
	case sc.Seed == nil:
		sc.Seed = &opts.Seed
	case opts.SeedSet && *sc.Seed != opts.Seed:
		logrus.Warnf("scenario %s sets seed %d; ignoring --seed %d", opts.ScenarioPath, *sc.Seed, opts.Seed)
	}
	return sc, nil
}

// newSimulation assembles the lot, random source, departure density,
// trace and telemetry described by opts.
func newSimulation(ctx context.Context, opts runOptions) (*simRun, error) {
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, fmt.Errorf("unknown trace level %q; valid: none, decisions", opts.TraceLevel)
	}
	sc, err := scenarioFromOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	dist, err := sc.DepartureDistribution()
	if err != nil {
		return nil, err
	}
	parkingLot, err := sc.NewLot()
	if err != nil {
		return nil, err
	}

	run := &simRun{Key: sim.NewSimulationKey(sc.SeedOr(opts.Seed))}
	var lot sim.Lot = parkingLot
	if opts.OTLPEndpoint != "" {
		run.telemetry, err = telemetry.NewProvider(ctx, telemetry.Config{OTLPEndpoint: opts.OTLPEndpoint})
		if err != nil {
			return nil, fmt.Errorf("telemetry: %w", err)
		}
		lot, err = telemetry.NewInstrumentedLot(parkingLot, run.telemetry.Meter())
		if err != nil {
			return nil, run.closeOnError(ctx, fmt.Errorf("telemetry: %w", err))
		}
	}

	run.Sim, err = sim.NewSimulator(sc.SimConfig(), lot, sim.NewSeededRandomSource(run.Key), dist)
	if err != nil {
		return nil, run.closeOnError(ctx, err)
	}
	for _, s := range sc.WaitingSpots() {
		run.Sim.InjectArrival(s)
	}
	run.Sim.EnableTrace(trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel)})
	return run, nil
}

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/parking-sim/parking-sim/sim"
)

// InstrumentedLot decorates a sim.Lot with OpenTelemetry counters.
// Lot methods carry no context, so measurements use context.Background().
type InstrumentedLot struct {
	sim.Lot

	parkAttempts metric.Int64Counter
	removals     metric.Int64Counter
	occupancy    metric.Int64UpDownCounter
}

// NewInstrumentedLot wraps lot and records its current occupancy and
// capacity as starting values.
func NewInstrumentedLot(lot sim.Lot, meter metric.Meter) (*InstrumentedLot, error) {
	parkAttempts, err := meter.Int64Counter("parking_lot_park_attempts_total",
		metric.WithDescription("Admission attempts by outcome"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	removals, err := meter.Int64Counter("parking_lot_departures_total",
		metric.WithDescription("Cars removed from the lot"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancy, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of parked cars"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	capacity, err := meter.Int64UpDownCounter("parking_lot_capacity",
		metric.WithDescription("Total number of parking spaces"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	capacity.Add(ctx, int64(lot.Capacity()))
	occupancy.Add(ctx, int64(lot.Occupancy()))

	return &InstrumentedLot{
		Lot:          lot,
		parkAttempts: parkAttempts,
		removals:     removals,
		occupancy:    occupancy,
	}, nil
}

func (il *InstrumentedLot) Park(carID string, timestamp int64) error {
	err := il.Lot.Park(carID, timestamp)
	ctx := context.Background()
	status := "admitted"
	if err != nil {
		status = "refused"
	} else {
		il.occupancy.Add(ctx, 1)
	}
	il.parkAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	return err
}

func (il *InstrumentedLot) RemoveAt(index int) *sim.Spot {
	removed := il.Lot.RemoveAt(index)
	ctx := context.Background()
	il.removals.Add(ctx, 1)
	il.occupancy.Add(ctx, -1)
	return removed
}

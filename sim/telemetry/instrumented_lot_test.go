package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/parking-sim/parking-sim/sim"
)

// collectSums returns the int64 sum data points per metric name, keyed by
// the "status" attribute ("" when absent).
func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			points := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				points[status.AsString()] += dp.Value
			}
			out[m.Name] = points
		}
	}
	return out
}

func newTestProvider(t *testing.T) (*Provider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	p, err := NewProvider(context.Background(), Config{Reader: reader})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, reader
}

func TestNewProvider_RequiresReaderOrEndpoint(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{})
	assert.Error(t, err)
}

func TestInstrumentedLot_CountsParksAndRemovals(t *testing.T) {
	// GIVEN an instrumented lot of capacity 2 already holding one car
	p, reader := newTestProvider(t)
	base, err := sim.NewParkingLot(2)
	require.NoError(t, err)
	require.NoError(t, base.Park("A", 0))
	lot, err := NewInstrumentedLot(base, p.Meter())
	require.NoError(t, err)

	// WHEN one car parks, one is refused and one leaves
	require.NoError(t, lot.Park("B", 1))
	assert.ErrorIs(t, lot.Park("C", 2), sim.ErrLotFull)
	removed := lot.RemoveAt(0)

	// THEN the wrapped lot changed and the counters match
	assert.Equal(t, "A", removed.CarID)
	assert.Equal(t, 1, lot.Occupancy())

	sums := collectSums(t, reader)
	assert.Equal(t, int64(1), sums["parking_lot_park_attempts_total"]["admitted"])
	assert.Equal(t, int64(1), sums["parking_lot_park_attempts_total"]["refused"])
	assert.Equal(t, int64(1), sums["parking_lot_departures_total"][""])
	assert.Equal(t, int64(1), sums["parking_lot_occupancy"][""])
	assert.Equal(t, int64(2), sums["parking_lot_capacity"][""])
}

func TestInstrumentedLot_DrivesSimulator(t *testing.T) {
	// GIVEN a simulator running on an instrumented lot
	p, reader := newTestProvider(t)
	base, err := sim.NewParkingLot(4)
	require.NoError(t, err)
	lot, err := NewInstrumentedLot(base, p.Meter())
	require.NoError(t, err)
	s, err := sim.NewDefaultSimulator(lot, 60, 4*sim.SecondsPerHour, sim.NewSimulationKey(5))
	require.NoError(t, err)

	// WHEN it runs
	s.Run()

	// THEN the exported occupancy equals the final lot occupancy
	sums := collectSums(t, reader)
	assert.Equal(t, int64(lot.Occupancy()), sums["parking_lot_occupancy"][""])
	assert.Equal(t, int64(s.Metrics.Admissions), sums["parking_lot_park_attempts_total"]["admitted"])
	assert.Equal(t, int64(s.Metrics.RefusedAdmissions), sums["parking_lot_park_attempts_total"]["refused"])
	assert.Equal(t, int64(s.Metrics.Departures), sums["parking_lot_departures_total"][""])
}

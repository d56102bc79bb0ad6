package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimConfig_Defaults(t *testing.T) {
	got := NewSimConfig(3, SimulationDuration)
	want := SimConfig{
		PerHourArrivalRate: 3,
		Steps:              86400,
		PlateLength:        3,
		MaxParkingDuration: 28800,
	}
	assert.Equal(t, want, got)
}

func TestSimConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimConfig)
		wantErr bool
	}{
		{"defaults", func(*SimConfig) {}, false},
		{"zero rate", func(c *SimConfig) { c.PerHourArrivalRate = 0 }, false},
		{"zero steps", func(c *SimConfig) { c.Steps = 0 }, false},
		{"one car per second", func(c *SimConfig) { c.PerHourArrivalRate = SecondsPerHour }, false},
		{"negative rate", func(c *SimConfig) { c.PerHourArrivalRate = -1 }, true},
		{"rate above one per second", func(c *SimConfig) { c.PerHourArrivalRate = SecondsPerHour + 1 }, true},
		{"negative steps", func(c *SimConfig) { c.Steps = -1 }, true},
		{"zero plate length", func(c *SimConfig) { c.PlateLength = 0 }, true},
		{"zero max stay", func(c *SimConfig) { c.MaxParkingDuration = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewSimConfig(3, 100)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimConfig_ArrivalProbability(t *testing.T) {
	p, err := NewSimConfig(60, 10).ArrivalProbability()
	require.NoError(t, err)
	assert.Equal(t, "1/60", p.String())
}

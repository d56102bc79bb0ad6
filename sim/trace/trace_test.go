package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"verbose", false},
		{"Decisions", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidTraceLevel(tt.level))
		})
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	assert.True(t, TraceConfig{Level: TraceLevelDecisions}.Enabled())
	assert.False(t, TraceConfig{Level: TraceLevelNone}.Enabled())
	assert.False(t, TraceConfig{}.Enabled())
}

func TestSimulationTrace_RecordsInOrder(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN records are appended
	st.RecordAdmission(AdmissionRecord{CarID: "A", Clock: 1, Admitted: true})
	st.RecordAdmission(AdmissionRecord{CarID: "B", Clock: 2, Admitted: false, Reason: "lot full"})
	st.RecordDeparture(DepartureRecord{CarID: "A", Clock: 9, DwellTicks: 8})

	// THEN they are kept in insertion order
	assert.Len(t, st.Admissions, 2)
	assert.Equal(t, "A", st.Admissions[0].CarID)
	assert.Equal(t, "B", st.Admissions[1].CarID)
	assert.Len(t, st.Departures, 1)
	assert.Equal(t, int64(8), st.Departures[0].DwellTicks)
}

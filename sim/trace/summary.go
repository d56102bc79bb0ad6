package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	AdmissionAttempts int
	AdmittedCount     int
	RefusedCount      int
	DepartureCount    int
	ForcedCount       int
	MeanDwell         float64
	MaxDwell          int64
	MeanWait          float64 // over admitted cars only
	MaxWait           int64
	RefusalReasons    map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		RefusalReasons: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.AdmissionAttempts = len(st.Admissions)
	var totalWait int64
	for _, a := range st.Admissions {
		if !a.Admitted {
			summary.RefusedCount++
			summary.RefusalReasons[a.Reason]++
			continue
		}
		summary.AdmittedCount++
		totalWait += a.WaitTicks
		if a.WaitTicks > summary.MaxWait {
			summary.MaxWait = a.WaitTicks
		}
	}
	if summary.AdmittedCount > 0 {
		summary.MeanWait = float64(totalWait) / float64(summary.AdmittedCount)
	}

	summary.DepartureCount = len(st.Departures)
	if summary.DepartureCount > 0 {
		var totalDwell int64
		for _, d := range st.Departures {
			if d.Forced {
				summary.ForcedCount++
			}
			totalDwell += d.DwellTicks
			if d.DwellTicks > summary.MaxDwell {
				summary.MaxDwell = d.DwellTicks
			}
		}
		summary.MeanDwell = float64(totalDwell) / float64(summary.DepartureCount)
	}

	return summary
}

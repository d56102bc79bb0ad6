// Package trace provides decision-trace recording for parking simulations.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// AdmissionRecord captures a single attempt to admit the car at the front of
// the incoming queue.
type AdmissionRecord struct {
	CarID     string
	Clock     int64
	Admitted  bool
	Reason    string
	WaitTicks int64 // ticks spent queued before this attempt
}

// DepartureRecord captures a car leaving the lot.
type DepartureRecord struct {
	CarID      string
	Clock      int64
	DwellTicks int64
	Forced     bool // dwell exceeded the maximum stay; not sampled
}

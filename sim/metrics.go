// Tracks simulation-wide counters: arrivals, admissions, departures,
// queue lengths and lot occupancy.

package sim

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	Arrivals          int   // cars produced by arrival sampling
	InjectedArrivals  int   // cars enqueued through InjectArrival
	Admissions        int   // cars moved from the incoming queue into the lot
	RefusedAdmissions int   // admission attempts refused because the lot was full
	Departures        int   // cars moved from the lot to the outgoing queue
	ForcedEvictions   int   // departures caused by exceeding the maximum stay
	PeakIncomingQueue int   // longest the incoming queue got
	PeakOccupancy     int   // most cars parked at the end of any tick
	OccupancySum      int64 // sum over ticks of end-of-tick occupancy
	TotalWaitTicks    int64 // sum over admissions of (admission clock - queued timestamp)
	TotalDwellTicks   int64 // sum over departures of dwell time
	SimEndedTime      int64 // clock value when Run returned
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MeanUtilization is the time-averaged fraction of the lot in use.
func (m *Metrics) MeanUtilization(steps int64, capacity int) float64 {
	if steps <= 0 || capacity <= 0 {
		return 0
	}
	return float64(m.OccupancySum) / (float64(steps) * float64(capacity))
}

// MeanWait is the average number of ticks an admitted car spent queued.
func (m *Metrics) MeanWait() float64 {
	if m.Admissions == 0 {
		return 0
	}
	return float64(m.TotalWaitTicks) / float64(m.Admissions)
}

// MeanDwell is the average number of ticks a departed car stayed parked.
func (m *Metrics) MeanDwell() float64 {
	if m.Departures == 0 {
		return 0
	}
	return float64(m.TotalDwellTicks) / float64(m.Departures)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(steps int64, capacity int) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Arrivals             : %d (+%d injected)\n", m.Arrivals, m.InjectedArrivals)
	fmt.Printf("Admissions           : %d\n", m.Admissions)
	fmt.Printf("Refused Admissions   : %d\n", m.RefusedAdmissions)
	fmt.Printf("Departures           : %d (%d forced)\n", m.Departures, m.ForcedEvictions)
	fmt.Printf("Peak Incoming Queue  : %d\n", m.PeakIncomingQueue)
	fmt.Printf("Peak Occupancy       : %d / %d\n", m.PeakOccupancy, capacity)
	fmt.Printf("Mean Utilization     : %.4f\n", m.MeanUtilization(steps, capacity))
	if m.Admissions > 0 {
		fmt.Printf("Average Wait         : %.2f ticks\n", m.MeanWait())
	}
	if m.Departures > 0 {
		fmt.Printf("Average Dwell        : %.2f ticks\n", m.MeanDwell())
	}
}

// Report is the JSON results document of one run.
type Report struct {
	RunID              string  `json:"run_id"`
	Seed               int64   `json:"seed"`
	ArrivalRatePerHour int64   `json:"arrival_rate_per_hour"`
	ArrivalProbability string  `json:"arrival_probability"`
	Capacity           int     `json:"capacity"`
	Steps              int64   `json:"steps"`
	MaxParkingDuration int64   `json:"max_parking_duration"`
	Arrivals           int     `json:"arrivals"`
	InjectedArrivals   int     `json:"injected_arrivals"`
	Admissions         int     `json:"admissions"`
	RefusedAdmissions  int     `json:"refused_admissions"`
	Departures         int     `json:"departures"`
	ForcedEvictions    int     `json:"forced_evictions"`
	FinalOccupancy     int     `json:"final_occupancy"`
	FinalIncomingQueue int     `json:"final_incoming_queue"`
	FinalOutgoingQueue int     `json:"final_outgoing_queue"`
	PeakIncomingQueue  int     `json:"peak_incoming_queue"`
	PeakOccupancy      int     `json:"peak_occupancy"`
	MeanUtilization    float64 `json:"mean_utilization"`
	MeanWaitTicks      float64 `json:"mean_wait_ticks"`
	MeanDwellTicks     float64 `json:"mean_dwell_ticks"`
}

// RunID derives a stable identifier for a run from its seed and
// configuration, so identical runs share an ID.
func RunID(key SimulationKey, cfg SimConfig, capacity int) uuid.UUID {
	name := fmt.Sprintf("seed=%d rate=%d steps=%d capacity=%d plate=%d maxstay=%d",
		key, cfg.PerHourArrivalRate, cfg.Steps, capacity, cfg.PlateLength, cfg.MaxParkingDuration)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name))
}

// SaveResults writes r as indented JSON to path. An empty path is a no-op.
func SaveResults(r *Report, path string) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	logrus.Infof("Results written to %s", path)
	return nil
}

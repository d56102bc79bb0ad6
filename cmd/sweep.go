package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sweepRates []int64 // Arrival rates to simulate, one run each

// sweepRow is one line of the sweep table.
type sweepRow struct {
	Rate              int64
	MeanUtilization   float64
	PeakIncomingQueue int
	FinalIncoming     int
	Departures        int
	ForcedEvictions   int
}

// runSweep simulates each rate in turn with otherwise identical options.
func runSweep(opts runOptions, rates []int64) ([]sweepRow, error) {
	rows := make([]sweepRow, 0, len(rates))
	for _, rate := range rates {
		o := opts
		o.ArrivalRate = rate
		run, err := newSimulation(context.Background(), o)
		if err != nil {
			return nil, fmt.Errorf("rate %d: %w", rate, err)
		}
		run.Sim.Run()
		m := run.Sim.Metrics
		rows = append(rows, sweepRow{
			Rate:              rate,
			MeanUtilization:   m.MeanUtilization(run.Sim.Steps(), run.Sim.Lot().Capacity()),
			PeakIncomingQueue: m.PeakIncomingQueue,
			FinalIncoming:     run.Sim.IncomingQueueSize(),
			Departures:        m.Departures,
			ForcedEvictions:   m.ForcedEvictions,
		})
		logrus.Infof("rate %d/h done: utilization=%.4f", rate, rows[len(rows)-1].MeanUtilization)
	}
	return rows, nil
}

func printSweep(w io.Writer, rows []sweepRow) {
	fmt.Fprintln(w, "=== Arrival Rate Sweep ===")
	fmt.Fprintf(w, "%8s %12s %10s %10s %10s %8s\n", "rate/h", "utilization", "peak-queue", "end-queue", "departed", "forced")
	for _, r := range rows {
		fmt.Fprintf(w, "%8d %12.4f %10d %10d %10d %8d\n",
			r.Rate, r.MeanUtilization, r.PeakIncomingQueue, r.FinalIncoming, r.Departures, r.ForcedEvictions)
	}
}

// sweepCmd runs one independent simulation per arrival rate
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate several arrival rates and compare utilization",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		opts := currentOptions(cmd)
		if opts.ScenarioPath != "" {
			logrus.Fatalf("sweep varies the arrival rate; use flags instead of --scenario")
		}
		rows, err := runSweep(opts, sweepRates)
		if err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}
		printSweep(cmd.OutOrStdout(), rows)
	},
}

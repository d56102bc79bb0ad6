package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/parking-sim/parking-sim/sim"
	"github.com/parking-sim/parking-sim/sim/trace"
)

var (
	// CLI flags for the lot and arrival process
	seed         int64  // Seed for arrival, departure and plate sampling
	arrivalRate  int64  // Cars arriving per hour
	capacity     int    // Number of parking spaces
	steps        int64  // Simulated seconds to run
	plateLength  int    // Length of generated car identifiers
	maxStay      int64  // Seconds after which a car is evicted
	scenarioPath string // YAML scenario overriding the flags above
	resultsPath  string // JSON results output path
	traceLevel   string // Decision trace level
	otlpEndpoint string // OTLP/HTTP metrics endpoint
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "parking-sim",
	Short: "Time-stepped parking lot occupancy simulator",
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// currentOptions collects the shared simulation flags of cmd.
func currentOptions(cmd *cobra.Command) runOptions {
	return runOptions{
		Seed:         seed,
		SeedSet:      cmd.Flags().Changed("seed"),
		ArrivalRate:  arrivalRate,
		Capacity:     capacity,
		Steps:        steps,
		PlateLength:  plateLength,
		MaxStay:      maxStay,
		ScenarioPath: scenarioPath,
		TraceLevel:   traceLevel,
		OTLPEndpoint: otlpEndpoint,
	}
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the parking lot simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		run, err := newSimulation(cmd.Context(), currentOptions(cmd))
		if err != nil {
			logrus.Fatalf("unable to set up simulation: %v", err)
		}

		logrus.Infof("Starting simulation: seed=%d, rate=%d/h, capacity=%d, steps=%d",
			run.Key, run.Sim.Config().PerHourArrivalRate, run.Sim.Lot().Capacity(), run.Sim.Steps())
		startTime := time.Now()

		run.Sim.Run()
		run.Sim.Metrics.Print(run.Sim.Steps(), run.Sim.Lot().Capacity())
		printTraceSummary(cmd.OutOrStdout(), run.Sim.Trace())

		if err := sim.SaveResults(run.Sim.Report(run.Key), resultsPath); err != nil {
			logrus.Fatalf("unable to save results: %v", err)
		}
		if err := run.Close(context.Background()); err != nil {
			logrus.Warnf("telemetry shutdown: %v", err)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// printTraceSummary prints decision statistics when tracing was enabled.
func printTraceSummary(w io.Writer, st *trace.SimulationTrace) {
	if st == nil {
		return
	}
	s := trace.Summarize(st)
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Admission Attempts   : %d (%d admitted, %d refused)\n", s.AdmissionAttempts, s.AdmittedCount, s.RefusedCount)
	fmt.Fprintf(w, "Departures           : %d (%d forced)\n", s.DepartureCount, s.ForcedCount)
	fmt.Fprintf(w, "Dwell mean/max       : %.2f / %d ticks\n", s.MeanDwell, s.MaxDwell)
	fmt.Fprintf(w, "Wait mean/max        : %.2f / %d ticks\n", s.MeanWait, s.MaxWait)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSimulationFlags registers the flags shared by run and sweep.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for arrival, departure and plate sampling")
	cmd.Flags().Int64Var(&arrivalRate, "rate", 3, "Cars arriving per hour (0-3600)")
	cmd.Flags().IntVar(&capacity, "capacity", 10, "Number of parking spaces")
	cmd.Flags().Int64Var(&steps, "steps", sim.SimulationDuration, "Simulated seconds to run")
	cmd.Flags().IntVar(&plateLength, "plate-length", sim.PlateNumLength, "Length of generated car identifiers")
	cmd.Flags().Int64Var(&maxStay, "max-stay", sim.MaxParkingDuration, "Seconds after which a parked car is evicted")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides the lot and arrival flags)")
	cmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	addSimulationFlags(runCmd)
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write JSON results to this path")
	runCmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP endpoint for lot metrics, e.g. http://localhost:4318")

	addSimulationFlags(sweepCmd)
	sweepCmd.Flags().Int64SliceVar(&sweepRates, "rates", []int64{1, 3, 6, 12}, "Comma-separated arrival rates (cars per hour)")

	validateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file to check")
	_ = validateCmd.MarkFlagRequired("scenario")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(validateCmd)
}

package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/parking-sim/parking-sim/sim/scenario"
)

// validateScenario loads and validates the scenario at path.
func validateScenario(path string) (*scenario.Scenario, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// validateCmd checks a scenario file without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := validateScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("invalid scenario %s: %v", scenarioPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "scenario %s OK: capacity=%d, rate=%d/h, steps=%d\n",
			scenarioPath, sc.Capacity, sc.ArrivalRatePerHour, sc.SimConfig().Steps)
	},
}

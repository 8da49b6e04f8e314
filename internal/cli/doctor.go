// internal/cli/doctor.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the build tools for this platform are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := newRunner()

		strategy, err := nativeext.NewDispatcher(runner).StrategyFor(config.Platform)
		if err != nil {
			return err
		}

		var requirements []nativeext.ToolRequirement
		if checker, ok := strategy.(nativeext.ToolChecker); ok {
			requirements = append(requirements, checker.RequiredTools()...)
		}
		requirements = append(requirements, nativeext.NewExtensionCompiler(runner).RequiredTools(config.Platform)...)

		fmt.Printf("Strategy: %s (%s)\n", strategy.Name(), config.Platform)
		for _, status := range nativeext.InspectTools(requirements) {
			switch {
			case status.Found != "":
				fmt.Printf("  ok       %-8s %s\n", status.Found, status.Path)
			case status.Requirement.Optional:
				fmt.Printf("  optional %-8s not found (%s)\n", status.Requirement.Name, status.Requirement.Purpose)
			default:
				fmt.Printf("  missing  %-8s (%s)\n", status.Requirement.Name, status.Requirement.Purpose)
			}
		}

		return nativeext.CheckRequiredTools(requirements)
	},
}

// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nativeext version %s\n", version)
		if pkgVersion, err := config.PackageVersion(); err == nil {
			fmt.Printf("%s version %s\n", config.PackageName, pkgVersion)
		}
	},
}

// internal/cli/arch.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

var archCmd = &cobra.Command{
	Use:   "arch",
	Short: "Print the detected Windows target architecture",
	Run: func(cmd *cobra.Command, args []string) {
		arch := config.Architecture()
		fmt.Printf("%s (cmake -A %s)\n", arch, nativeext.CMakeArchitecture(arch))
	},
}

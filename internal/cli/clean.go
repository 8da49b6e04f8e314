// internal/cli/clean.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove compiled modules and, with --all, the library build",
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := nativeext.Clean(config, cleanAll)
		if err != nil {
			return err
		}
		for _, path := range removed {
			fmt.Println(path)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "also remove the CMake build tree and the library install root")
}

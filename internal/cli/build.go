// internal/cli/build.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

var noInstall bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Resolve flags, compile the extension and install it",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := resolveManifest(cmd)
		if err != nil {
			return err
		}

		compiler := nativeext.NewExtensionCompiler(newRunner())
		result, err := compiler.Compile(cmd.Context(), config, manifest.Extension)
		if err != nil {
			return err
		}

		if noInstall {
			for _, ext := range result.Extensions {
				fmt.Println(ext)
			}
			return nil
		}

		installed, err := nativeext.InstallExtension(config, manifest.Extension, result.Extensions)
		if err != nil {
			return err
		}
		for _, path := range installed {
			fmt.Println(path)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&noInstall, "no-install", false, "leave the compiled module in the output directory")
}

// internal/cli/resolve.go
package cli

import (
	"os"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

var manifestPath string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve flags and print the extension manifest",
	Long: `Locate (or build) the static libraries and print the extension
manifest as YAML. With --output the manifest is written to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := resolveManifest(cmd)
		if err != nil {
			return err
		}

		if manifestPath != "" {
			return nativeext.WriteManifest(manifestPath, manifest)
		}

		data, err := manifest.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&manifestPath, "output", "o", "", "write the manifest to this file instead of stdout")
}

func resolveManifest(cmd *cobra.Command) (*nativeext.Manifest, error) {
	pkg, err := nativeext.PackageMetadata(config)
	if err != nil {
		return nil, err
	}

	dispatcher := nativeext.NewDispatcher(newRunner())
	desc, result, err := dispatcher.Describe(cmd.Context(), config)
	if err != nil {
		return nil, err
	}

	return nativeext.NewManifest(pkg, desc, result), nil
}

// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	nativeext "github.com/contriboss/native-extension-go"
)

const version = "0.1.0"

var (
	cfgFile    string
	chdir      string
	logLevel   string
	platformOS string
	config     *nativeext.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nativeext",
	Short: "Resolve and build the native extension module",
	Long: `nativeext - native extension toolchain resolver

Locates the prebuilt static libraries of the wrapped C++ library, builds
them from the bundled sources (or with CMake on Windows) when they are
missing, and derives the compiler and linker flags for the extension.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+nativeext.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "project directory to run in")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&platformOS, "platform", "", "override the host operating system (e.g. linux, darwin, aix, windows)")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(archCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	if chdir != "" {
		if err := os.Chdir(chdir); err != nil {
			return fmt.Errorf("changing to project directory: %w", err)
		}
	}

	var err error
	config, err = nativeext.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	// Override config with flags
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if platformOS != "" {
		config.Platform.OS = platformOS
	}

	config.Logger = nativeext.NewLogger(config.LogLevel, os.Stderr)
	return nil
}

func newRunner() nativeext.CommandRunner {
	return nativeext.NewProcessRunner(os.Stderr)
}

package nativeext

import (
	"fmt"
	"os"
)

// Clean removes build artifacts and returns the paths it removed.
//
// The compiled module output directory is always removed. With all set,
// the CMake build tree and the library install root go too, which forces
// the next resolve onto the fallback build.
func Clean(config *Config, all bool) ([]string, error) {
	targets := []string{config.Compiler.OutputDir}
	if all {
		targets = append(targets, config.CMake.BuildDir, config.Root)
		if config.Platform.Family() == FamilyWindows {
			targets = append(targets, config.Windows.FallbackRoot)
		}
	}

	var removed []string
	for _, target := range uniqueStrings(targets) {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return removed, fmt.Errorf("removing %s: %w", target, err)
		}
		config.logger().Info().Str("path", target).Msg("removed")
		removed = append(removed, target)
	}

	return removed, nil
}

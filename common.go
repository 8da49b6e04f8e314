package nativeext

import (
	"context"
	"fmt"
	"path/filepath"
)

// resolveWithFallback executes a platform's ordered fallback chain.
//
// # Process Flow
//
//  1. Locate static libraries under each candidate root, in order
//  2. The first root with at least one library wins; synthesize its flags
//  3. Otherwise run FallbackFunc (a bundled script or CMake build)
//  4. Re-locate libraries under FallbackRoot
//  5. If the fallback produced nothing, fail with ErrNoArtifacts
//
// A failing fallback build aborts immediately; there is no retry and the
// post-fallback lookup is not attempted.
//
// Every decision (libraries found per root, fallback invoked, final root)
// is logged before the next potentially fatal step.
func resolveWithFallback(ctx context.Context, config *Config, steps ResolveSteps) (*ResolveResult, error) {
	logger := config.logger()
	result := &ResolveResult{
		Output: []string{},
	}

	for _, root := range steps.Candidates {
		root = filepath.Clean(root)
		libs := LocateStaticLibraries(root, steps.Suffix)
		logger.Info().Str("root", root).Strs("libs", libs).Msg("located static libraries")

		if len(libs) > 0 {
			result.Root = root
			result.Libraries = libs
			result.Flags = steps.FlagsFunc(root, libs)
			return result, nil
		}
	}

	if steps.FallbackFunc == nil {
		return result, &StepError{Step: "locate", Err: ErrNoArtifacts}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	logger.Info().Str("step", steps.FallbackName).Str("root", steps.FallbackRoot).Msg("no prebuilt libraries, running fallback build")
	result.FallbackUsed = true

	if err := steps.FallbackFunc(ctx, config, result); err != nil {
		return result, err
	}

	fallbackRoot := filepath.Clean(steps.FallbackRoot)
	libs := LocateStaticLibraries(fallbackRoot, steps.Suffix)
	logger.Info().Str("root", fallbackRoot).Strs("libs", libs).Msg("located static libraries after fallback build")

	if len(libs) == 0 {
		return result, &StepError{
			Step: "verify " + steps.FallbackName,
			Root: fallbackRoot,
			Err:  fmt.Errorf("%w: %s finished but produced no *%s files", ErrNoArtifacts, steps.FallbackName, steps.Suffix),
		}
	}

	result.Root = fallbackRoot
	result.Libraries = libs
	result.Flags = steps.FlagsFunc(fallbackRoot, libs)
	return result, nil
}

package nativeext

import "context"

// WindowsStrategy resolves MSVC flags on Windows hosts.
//
// Ordered attempts, each tried only if the previous yields no .lib files:
//  1. the architecture-specific prebuilt root (../build/root_<arch>)
//  2. the generic prebuilt root (../build/root)
//  3. a local CMake build installed into ./build/root
type WindowsStrategy struct {
	cmake *CmakeBuilder
}

// NewWindowsStrategy creates the Windows strategy with a CMake builder on runner.
func NewWindowsStrategy(runner CommandRunner) *WindowsStrategy {
	return &WindowsStrategy{cmake: NewCmakeBuilder(runner)}
}

// Name returns the strategy name
func (s *WindowsStrategy) Name() string {
	return "Windows"
}

// CanResolve accepts Windows only
func (s *WindowsStrategy) CanResolve(platform Platform) bool {
	return platform.Family() == FamilyWindows
}

// RequiredTools returns the tools needed if the CMake fallback runs
func (s *WindowsStrategy) RequiredTools() []ToolRequirement {
	return s.cmake.RequiredTools()
}

// CheckTools verifies cmake is available
func (s *WindowsStrategy) CheckTools() error {
	return s.cmake.CheckTools()
}

// Candidates returns the prebuilt roots for arch, in the order they are tried.
func (s *WindowsStrategy) Candidates(config *Config, arch ArchitectureTag) []string {
	return uniqueStrings(expandPlaceholders(config.Windows.Candidates, map[string]string{
		"arch": string(arch),
	}))
}

// Resolve walks the candidate roots and falls back to a CMake build
func (s *WindowsStrategy) Resolve(ctx context.Context, config *Config) (*ResolveResult, error) {
	arch := config.Architecture()
	config.logger().Info().
		Str("arch", string(arch)).
		Int("pointer_width", config.Platform.PointerWidth).
		Str("machine", config.Platform.Machine).
		Msg("detected target architecture")

	result, err := resolveWithFallback(ctx, config, ResolveSteps{
		Candidates:   s.Candidates(config, arch),
		Suffix:       StaticLibrarySuffix(config.Platform),
		FallbackName: "cmake build",
		FallbackFunc: func(ctx context.Context, config *Config, result *ResolveResult) error {
			return s.cmake.Build(ctx, config, arch, result)
		},
		FallbackRoot: config.Windows.FallbackRoot,
		FlagsFunc:    SynthesizeWindowsFlags,
	})
	result.Strategy = s.Name()
	result.Architecture = arch
	return result, err
}

package nativeext

import "context"

// PosixStrategy resolves flags on Linux, macOS, AIX and other Unix hosts.
//
// The chain has a single candidate, the configured install root. When it
// holds no .a archives the bundled build script populates it and the same
// root is queried again.
type PosixStrategy struct {
	bundled *BundledBuilder
}

// NewPosixStrategy creates the POSIX strategy with a bundled builder on runner.
func NewPosixStrategy(runner CommandRunner) *PosixStrategy {
	return &PosixStrategy{bundled: NewBundledBuilder(runner)}
}

// Name returns the strategy name
func (s *PosixStrategy) Name() string {
	return "POSIX"
}

// CanResolve accepts every non-Windows platform
func (s *PosixStrategy) CanResolve(platform Platform) bool {
	family := platform.Family()
	return family != FamilyWindows && family != FamilyUnknown
}

// RequiredTools returns the tools needed if the bundled build runs
func (s *PosixStrategy) RequiredTools() []ToolRequirement {
	return s.bundled.RequiredTools()
}

// CheckTools verifies the bundled build tools are available
func (s *PosixStrategy) CheckTools() error {
	return s.bundled.CheckTools()
}

// Resolve locates libraries under config.Root, running the bundled build if needed
func (s *PosixStrategy) Resolve(ctx context.Context, config *Config) (*ResolveResult, error) {
	family := config.Platform.Family()

	result, err := resolveWithFallback(ctx, config, ResolveSteps{
		Candidates:   []string{config.Root},
		Suffix:       StaticLibrarySuffix(config.Platform),
		FallbackName: "bundled build",
		FallbackFunc: s.bundled.Build,
		FallbackRoot: config.Root,
		FlagsFunc: func(root string, libs []string) *FlagSet {
			return SynthesizePosixFlags(root, libs, family)
		},
	})
	result.Strategy = s.Name()
	return result, err
}

package nativeext

import "context"

// Strategy resolves extension flags for one platform family.
//
// Each strategy owns its platform's fallback chain and is registered with
// the Dispatcher, which picks the first strategy that accepts the host.
//
// # Strategy Lifecycle
//
//  1. CanResolve() - Dispatcher calls this to find the strategy for a platform
//  2. Resolve() - Dispatcher calls this to locate or build libraries and synthesize flags
//
// # Example Implementation
//
//	type StaticOnlyStrategy struct{}
//
//	func (s *StaticOnlyStrategy) Name() string { return "StaticOnly" }
//
//	func (s *StaticOnlyStrategy) CanResolve(p Platform) bool {
//	    return p.Family() == FamilyLinux
//	}
//
//	func (s *StaticOnlyStrategy) Resolve(ctx context.Context, config *Config) (*ResolveResult, error) {
//	    return resolveWithFallback(ctx, config, ResolveSteps{
//	        Candidates: []string{config.Root},
//	        Suffix:     ".a",
//	        FlagsFunc: func(root string, libs []string) *FlagSet {
//	            return SynthesizePosixFlags(root, libs, FamilyLinux)
//	        },
//	    })
//	}
//
// Strategies are stateless apart from their runners; a run is single-threaded.
type Strategy interface {
	// Name returns the human-readable name of this strategy.
	Name() string

	// CanResolve checks if this strategy handles the given platform.
	CanResolve(platform Platform) bool

	// Resolve locates or builds the static libraries and synthesizes flags.
	//
	// Returns a ResolveResult with Flags set on success. External build
	// failures and an empty post-fallback lookup are returned as errors.
	Resolve(ctx context.Context, config *Config) (*ResolveResult, error)
}

package nativeext

import (
	"context"
	"fmt"
)

// Dispatcher manages the registration and selection of platform strategies.
//
// The dispatcher maintains a registry of Strategy implementations and:
//   - Registers new strategies
//   - Finds the strategy for a host platform
//   - Resolves flags and assembles the ExtensionDescriptor
//
// # Usage
//
// Create a dispatcher with the standard strategies:
//
//	dispatcher := nativeext.NewDispatcher(nativeext.NewProcessRunner(os.Stderr))
//	desc, result, err := dispatcher.Describe(ctx, config)
//
// # Strategy Selection
//
// Strategies are asked in registration order; the first whose CanResolve
// returns true handles the platform. ErrUnsupportedPlatform is returned if
// none does.
//
// Register all strategies before use; the registry is not synchronized.
type Dispatcher struct {
	strategies []Strategy
}

// NewDispatcher creates a dispatcher with the Windows and POSIX strategies
// registered, both running external commands through runner.
func NewDispatcher(runner CommandRunner) *Dispatcher {
	dispatcher := &Dispatcher{}

	dispatcher.Register(NewWindowsStrategy(runner))
	dispatcher.Register(NewPosixStrategy(runner))

	return dispatcher
}

// Register adds a strategy. Strategies are checked in registration order.
func (d *Dispatcher) Register(strategy Strategy) {
	d.strategies = append(d.strategies, strategy)
}

// StrategyFor returns the strategy that handles platform.
func (d *Dispatcher) StrategyFor(platform Platform) (Strategy, error) {
	for _, strategy := range d.strategies {
		if strategy.CanResolve(platform) {
			return strategy, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
}

// ListStrategies returns a copy of all registered strategies.
func (d *Dispatcher) ListStrategies() []Strategy {
	return append([]Strategy{}, d.strategies...)
}

// Resolve selects the platform strategy and resolves the flags.
func (d *Dispatcher) Resolve(ctx context.Context, config *Config) (*ResolveResult, error) {
	strategy, err := d.StrategyFor(config.Platform)
	if err != nil {
		return nil, err
	}

	config.logger().Info().
		Str("platform", config.Platform.String()).
		Str("family", config.Platform.Family().String()).
		Str("strategy", strategy.Name()).
		Msg("selected strategy")

	return strategy.Resolve(ctx, config)
}

// Describe resolves the flags and assembles the extension descriptor.
//
// The descriptor is only returned when resolution succeeded; the
// ResolveResult is returned even on failure so callers can report the
// commands that ran and their output.
func (d *Dispatcher) Describe(ctx context.Context, config *Config) (*ExtensionDescriptor, *ResolveResult, error) {
	result, err := d.Resolve(ctx, config)
	if err != nil {
		return nil, result, err
	}

	config.logger().Info().
		Strs("cflags", result.Flags.Compile).
		Strs("libs", result.Flags.Link).
		Msg("resolved extension flags")

	desc, err := NewExtensionDescriptor(config.ModuleName, config.Sources, result.Flags)
	if err != nil {
		return nil, result, err
	}

	return desc, result, nil
}

package nativeext

import (
	"context"
	"fmt"
	"strings"
)

// BundledBuilder compiles the wrapped library from source with the bundled
// build script when no prebuilt static library exists.
//
// # Configuration
//
// The command is a template. Supported placeholders:
//
//	{{ref}}  - the version or CI ref to check out and build
//	{{root}} - the install root the script must populate
//
// The default command is the one shipped with the package:
//
//	./build_bundled.sh {{ref}}
type BundledBuilder struct {
	runner CommandRunner
	tools  []ToolRequirement
}

// NewBundledBuilder creates a bundled builder that runs commands through runner.
func NewBundledBuilder(runner CommandRunner) *BundledBuilder {
	return &BundledBuilder{
		runner: runner,
		tools: []ToolRequirement{
			{Name: "bash", Alternatives: []string{"sh"}, Purpose: "bundled build script"},
			{Name: "cmake", Purpose: "CMake build system used by the bundled build"},
			{Name: "git", Optional: true, Purpose: "checking out the bundled sources"},
		},
	}
}

// Name returns the builder name
func (b *BundledBuilder) Name() string {
	return "Bundled"
}

// RequiredTools returns the tools the bundled script relies on
func (b *BundledBuilder) RequiredTools() []ToolRequirement {
	return b.tools
}

// CheckTools verifies that all required tools are available
func (b *BundledBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Command returns the expanded bundled build command for ref and root.
func (b *BundledBuilder) Command(config *Config, ref string) ([]string, error) {
	if len(config.BundledCommand) == 0 {
		return nil, fmt.Errorf("no bundled build command configured")
	}
	return expandPlaceholders(config.BundledCommand, map[string]string{
		"ref":  ref,
		"root": config.Root,
	}), nil
}

// Build runs the bundled build script as a single external process.
//
// The ref comes from the CI ref variable when set, the package version
// otherwise. A non-zero exit is fatal and wraps ErrExternalBuild.
func (b *BundledBuilder) Build(ctx context.Context, config *Config, result *ResolveResult) error {
	logger := config.logger()

	ref, err := config.BuildRef()
	if err != nil {
		return &StepError{Step: "bundled build", Root: config.Root, Err: err}
	}

	args, err := b.Command(config, ref)
	if err != nil {
		return &StepError{Step: "bundled build", Root: config.Root, Err: err}
	}

	logger.Info().Str("builder", b.Name()).Str("ref", ref).Str("cmd", strings.Join(args, " ")).Msg("running bundled build")

	res := b.runner.Run(ctx, nil, args[0], args[1:]...)
	result.Commands = append(result.Commands, res)
	result.Output = append(result.Output, res.Output...)

	if !res.Success() {
		logger.Error().Str("builder", b.Name()).Err(res.Err).Int("exit_code", res.ExitCode).Msg("bundled build failed")
		return externalStepError("bundled build", config.Root, res)
	}

	return nil
}

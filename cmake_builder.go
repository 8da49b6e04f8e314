package nativeext

import (
	"context"
	"strconv"
	"strings"
)

// CmakeBuilder builds and installs the wrapped library with CMake and MSVC.
//
// It is the last step of the Windows fallback chain: configure a static
// Release build for the target architecture, then build the install
// target in parallel so the libraries land under the install prefix.
type CmakeBuilder struct {
	runner CommandRunner
}

// NewCmakeBuilder creates a CMake builder that runs commands through runner.
func NewCmakeBuilder(runner CommandRunner) *CmakeBuilder {
	return &CmakeBuilder{runner: runner}
}

// Name returns the builder name
func (b *CmakeBuilder) Name() string {
	return "CMake"
}

// RequiredTools returns the tools needed for CMake builds
func (b *CmakeBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "cmake", Purpose: "CMake build system"},
	}
}

// CheckTools verifies that cmake is available
func (b *CmakeBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// ConfigureArgs returns the cmake generate arguments for arch.
//
//	cmake <source> -A <x64|Win32|ARM64> -B <build> -D<shared>=OFF -DCMAKE_INSTALL_PREFIX=<prefix>
func (b *CmakeBuilder) ConfigureArgs(config *Config, arch ArchitectureTag) []string {
	cm := config.CMake
	args := []string{
		cm.SourceDir,
		"-A", CMakeArchitecture(arch),
		"-B", cm.BuildDir,
	}
	if cm.SharedOption != "" {
		args = append(args, "-D"+cm.SharedOption+"=OFF")
	}
	args = append(args, "-DCMAKE_INSTALL_PREFIX="+cm.InstallPrefix)
	return append(args, cm.ExtraArgs...)
}

// BuildArgs returns the cmake build-and-install arguments.
//
//	cmake --build <build> --config Release --target install --parallel 8
func (b *CmakeBuilder) BuildArgs(config *Config) []string {
	cm := config.CMake
	buildType := cm.BuildType
	if buildType == "" {
		buildType = "Release"
	}
	args := []string{"--build", cm.BuildDir, "--config", buildType, "--target", "install"}
	if cm.Parallel > 0 {
		args = append(args, "--parallel", strconv.Itoa(cm.Parallel))
	}
	return args
}

// Build runs the configure and build steps; either failing is fatal.
func (b *CmakeBuilder) Build(ctx context.Context, config *Config, arch ArchitectureTag, result *ResolveResult) error {
	if err := b.run(ctx, config, "cmake configure", b.ConfigureArgs(config, arch), result); err != nil {
		return err
	}
	return b.run(ctx, config, "cmake build", b.BuildArgs(config), result)
}

func (b *CmakeBuilder) run(ctx context.Context, config *Config, step string, args []string, result *ResolveResult) error {
	logger := config.logger()

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info().Str("builder", b.Name()).Str("step", step).Str("cmd", "cmake "+strings.Join(args, " ")).Msg("running cmake")

	res := b.runner.Run(ctx, nil, "cmake", args...)
	result.Commands = append(result.Commands, res)
	result.Output = append(result.Output, res.Output...)

	if !res.Success() {
		logger.Error().Str("builder", b.Name()).Err(res.Err).Int("exit_code", res.ExitCode).Str("step", step).Msg("cmake failed")
		return externalStepError(step, config.CMake.BuildDir, res)
	}

	return nil
}

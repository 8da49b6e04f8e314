package nativeext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Compiler constants
const (
	posixCompiler    = "c++"
	msvcCompiler     = "cl"
	posixModuleExt   = ".so"
	windowsModuleExt = ".pyd"
)

// ExtensionCompiler is a minimal packaging backend: it compiles an
// ExtensionDescriptor into a shared module with the platform C++ compiler.
//
// Projects whose real backend needs more (interpreter include paths,
// ABI tags) pass them through CompilerConfig.ExtraArgs.
type ExtensionCompiler struct {
	runner CommandRunner
}

// NewExtensionCompiler creates a compiler that runs commands through runner.
func NewExtensionCompiler(runner CommandRunner) *ExtensionCompiler {
	return &ExtensionCompiler{runner: runner}
}

// Name returns the builder name
func (c *ExtensionCompiler) Name() string {
	return "Compile"
}

// RequiredTools returns the C++ compiler requirement for platform
func (c *ExtensionCompiler) RequiredTools(platform Platform) []ToolRequirement {
	if platform.Family() == FamilyWindows {
		return []ToolRequirement{{Name: msvcCompiler, Purpose: "MSVC C++ compiler"}}
	}
	return []ToolRequirement{{
		Name:         posixCompiler,
		Alternatives: []string{"g++", "clang++"},
		Purpose:      "C++ compiler",
	}}
}

// Program returns the compiler to run: config, then $CXX, then the platform default.
func (c *ExtensionCompiler) Program(config *Config) string {
	if config.Compiler.Command != "" {
		return config.Compiler.Command
	}
	if cxx := config.getenv("CXX"); cxx != "" {
		return cxx
	}
	if config.Platform.Family() == FamilyWindows {
		return msvcCompiler
	}
	return posixCompiler
}

// OutputPath returns where the compiled module for desc is written.
func (c *ExtensionCompiler) OutputPath(config *Config, desc *ExtensionDescriptor) string {
	suffix := config.Compiler.Suffix
	if suffix == "" {
		suffix = posixModuleExt
		if config.Platform.Family() == FamilyWindows {
			suffix = windowsModuleExt
		}
	}
	return filepath.Join(config.Compiler.OutputDir, desc.ModulePath()+suffix)
}

// Args returns the compiler arguments producing output from desc.
//
// POSIX:   -shared -fPIC <compile args> <extra> <sources> -o <output> <link args>
// Windows: /nologo /LD /EHsc <compile args> <extra> <sources> /Fe:<output> /link <link args>
//
// Link arguments always come last so static archives follow the objects
// that reference them.
func (c *ExtensionCompiler) Args(config *Config, desc *ExtensionDescriptor, output string) []string {
	var args []string

	if config.Platform.Family() == FamilyWindows {
		args = append(args, "/nologo", "/LD", "/EHsc")
		args = append(args, desc.CompileArgs...)
		args = append(args, config.Compiler.ExtraArgs...)
		args = append(args, desc.Sources...)
		args = append(args, "/Fe:"+output, "/link")
		return append(args, desc.LinkArgs...)
	}

	args = append(args, "-shared", "-fPIC")
	args = append(args, desc.CompileArgs...)
	args = append(args, config.Compiler.ExtraArgs...)
	args = append(args, desc.Sources...)
	args = append(args, "-o", output)
	return append(args, desc.LinkArgs...)
}

// Compile builds the extension module described by desc.
func (c *ExtensionCompiler) Compile(ctx context.Context, config *Config, desc *ExtensionDescriptor) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	output := c.OutputPath(config, desc)
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		result.Error = fmt.Errorf("creating output directory: %w", err)
		return result, result.Error
	}

	program := c.Program(config)
	args := c.Args(config, desc, output)
	config.logger().Info().Str("builder", c.Name()).Str("cmd", program+" "+strings.Join(args, " ")).Msg("compiling extension")

	res := c.runner.Run(ctx, nil, program, args...)
	result.Output = append(result.Output, res.Output...)

	if !res.Success() {
		result.Error = externalStepError("compile", "", res)
		return result, result.Error
	}

	result.Extensions = []string{output}
	result.Success = true
	return result, nil
}

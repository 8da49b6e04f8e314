package nativeext

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowsStrategyPrefersArchRoot(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, nil)
	archRoot := filepath.Join(filepath.Dir(cfg.Windows.Candidates[0]), "root_amd64")
	genericRoot := cfg.Windows.Candidates[1]
	writeLibs(t, archRoot, "sentencepiece.lib")
	writeLibs(t, genericRoot, "other.lib")
	runner := &fakeRunner{}

	result, err := NewWindowsStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.Equal(t, "Windows", result.Strategy)
	assert.Equal(t, ArchAMD64, result.Architecture)
	assert.Equal(t, archRoot, result.Root)
	assert.Equal(t, []string{"/std:c++17", "/I" + filepath.Join(archRoot, "include")}, result.Flags.Compile)
	assert.Equal(t, []string{filepath.Join(archRoot, "lib", "sentencepiece.lib")}, result.Flags.Link)
}

func TestWindowsStrategyFallsBackToGenericRoot(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, nil)
	genericRoot := cfg.Windows.Candidates[1]
	writeLibs(t, genericRoot, "sentencepiece.lib", "sentencepiece_train.lib")
	runner := &fakeRunner{}

	result, err := NewWindowsStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.Equal(t, genericRoot, result.Root)
	assert.Len(t, result.Flags.Link, 2)
}

func TestWindowsStrategyArchRootWithoutLibsIsSkipped(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, nil)
	archRoot := filepath.Join(filepath.Dir(cfg.Windows.Candidates[0]), "root_amd64")
	writeLibs(t, archRoot, "readme.txt")
	writeLibs(t, cfg.Windows.Candidates[1], "sentencepiece.lib")

	result, err := NewWindowsStrategy(&fakeRunner{}).Resolve(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Windows.Candidates[1], result.Root)
}

func TestWindowsStrategyRunsCMakeFallback(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, map[string]string{"PYTHON_ARCH": "ARM64"})
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			if args[0] == "--build" {
				writeLibs(t, cfg.Windows.FallbackRoot, "sentencepiece.lib")
			}
			return 0, nil
		},
	}

	result, err := NewWindowsStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "cmake", runner.calls[0].Name)
	assert.Equal(t, []string{
		"sentencepiece", "-A", "ARM64", "-B", "build",
		"-DSPM_ENABLE_SHARED=OFF", `-DCMAKE_INSTALL_PREFIX=build\root`,
	}, runner.calls[0].Args)
	assert.Equal(t, "cmake", runner.calls[1].Name)
	assert.Equal(t, []string{
		"--build", "build", "--config", "Release", "--target", "install", "--parallel", "8",
	}, runner.calls[1].Args)

	assert.True(t, result.FallbackUsed)
	assert.Equal(t, ArchARM64, result.Architecture)
	assert.Equal(t, cfg.Windows.FallbackRoot, result.Root)
}

func TestWindowsStrategyCMakeConfigureFailureStopsChain(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, nil)
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			return 1, []string{"CMake Error: Could not create named generator"}
		},
	}

	_, err := NewWindowsStrategy(runner).Resolve(context.Background(), cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrExternalBuild))
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "cmake configure", stepErr.Step)
	assert.Len(t, runner.calls, 1)
}

func TestWindowsStrategyCMakeWithoutLibsIsFatal(t *testing.T) {
	cfg := testConfig(t, windowsPlatform, nil)
	runner := &fakeRunner{}

	_, err := NewWindowsStrategy(runner).Resolve(context.Background(), cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrNoArtifacts))
	assert.Len(t, runner.calls, 2)
}

func TestWindowsStrategyCandidates(t *testing.T) {
	cfg := DefaultConfig()
	s := NewWindowsStrategy(&fakeRunner{})

	assert.Equal(t, []string{"../build/root_win32", "../build/root"}, s.Candidates(cfg, ArchWin32))
	assert.Equal(t, []string{"../build/root_arm64", "../build/root"}, s.Candidates(cfg, ArchARM64))
}

func TestCmakeBuilderArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CMake.SharedOption = ""
	cfg.CMake.Parallel = 0
	cfg.CMake.ExtraArgs = []string{"-DSPM_ENABLE_TCMALLOC=OFF"}
	b := NewCmakeBuilder(&fakeRunner{})

	assert.Equal(t, []string{
		"sentencepiece", "-A", "Win32", "-B", "build",
		`-DCMAKE_INSTALL_PREFIX=build\root`, "-DSPM_ENABLE_TCMALLOC=OFF",
	}, b.ConfigureArgs(cfg, ArchWin32))
	assert.Equal(t, []string{"--build", "build", "--config", "Release", "--target", "install"}, b.BuildArgs(cfg))
}

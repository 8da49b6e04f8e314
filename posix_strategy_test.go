package nativeext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosixStrategyUsesPrebuiltLibraries(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	writeLibs(t, cfg.Root, "a.a", "b.a")
	runner := &fakeRunner{}

	result, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	assert.Empty(t, runner.calls)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, "POSIX", result.Strategy)
	assert.Equal(t, cfg.Root, result.Root)
	assert.Equal(t, []string{"-std=c++17", "-I" + filepath.Join(cfg.Root, "include"), "-Wl,-strip-all"}, result.Flags.Compile)
	assert.Equal(t, []string{
		"-Wl,--start-group",
		filepath.Join(cfg.Root, "lib", "a.a"),
		filepath.Join(cfg.Root, "lib", "b.a"),
		"-Wl,--end-group",
		"-Wl,-Bsymbolic",
	}, result.Flags.Link)
}

func TestPosixStrategyRunsBundledBuildWhenEmpty(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			writeLibs(t, cfg.Root, "libsentencepiece.a", "libsentencepiece_train.a")
			return 0, []string{"-- Install configuration: Release"}
		},
	}

	result, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "./build_bundled.sh", runner.calls[0].Name)
	assert.Equal(t, []string{"0.2.1"}, runner.calls[0].Args)

	assert.True(t, result.FallbackUsed)
	assert.Len(t, result.Libraries, 2)
	assert.Equal(t, []string{"-- Install configuration: Release"}, result.Output)
	assert.Equal(t, "-Wl,-Bsymbolic", result.Flags.Link[len(result.Flags.Link)-1])
}

func TestPosixStrategyCIRefOverridesVersion(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, map[string]string{"GITHUB_REF_NAME": "v0.2.2rc1"})
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			writeLibs(t, cfg.Root, "a.a")
			return 0, nil
		},
	}

	_, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"v0.2.2rc1"}, runner.calls[0].Args)
}

func TestPosixStrategyReadsVersionFile(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	cfg.Version = ""
	cfg.VersionFile = filepath.Join(t.TempDir(), "_version.py")
	require.NoError(t, os.WriteFile(cfg.VersionFile, []byte("__version__ = '0.2.0'\n"), 0o644))

	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			writeLibs(t, cfg.Root, "a.a")
			return 0, nil
		},
	}

	_, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"0.2.0"}, runner.calls[0].Args)
}

func TestPosixStrategyBundledBuildFailureIsFatal(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			return 2, []string{"fatal: couldn't find remote ref v0.2.1"}
		},
	}

	result, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrExternalBuild))
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "bundled build", stepErr.Step)
	assert.Contains(t, err.Error(), "couldn't find remote ref")
	assert.Contains(t, err.Error(), "status 2")

	assert.Len(t, runner.calls, 1)
	assert.Nil(t, result.Flags)
}

func TestPosixStrategyEmptyAfterFallbackIsFatal(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	runner := &fakeRunner{}

	result, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrNoArtifacts))
	assert.False(t, errors.Is(err, ErrExternalBuild))
	assert.Len(t, runner.calls, 1)
	assert.True(t, result.FallbackUsed)
	assert.Nil(t, result.Flags)
}

func TestPosixStrategyUnreadableVersionFile(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	cfg.Version = ""
	cfg.VersionFile = filepath.Join(t.TempDir(), "missing.py")
	runner := &fakeRunner{}

	_, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestPosixStrategyCanceledContext(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	runner := &fakeRunner{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPosixStrategy(runner).Resolve(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, runner.calls)
}

func TestPosixStrategyCustomBundledCommand(t *testing.T) {
	cfg := testConfig(t, linuxPlatform, nil)
	cfg.BundledCommand = []string{"bash", "scripts/bundle.sh", "--ref={{ref}}", "--prefix={{root}}"}
	runner := &fakeRunner{
		handler: func(name string, args []string) (int, []string) {
			writeLibs(t, cfg.Root, "a.a")
			return 0, nil
		},
	}

	_, err := NewPosixStrategy(runner).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "bash", runner.calls[0].Name)
	assert.Equal(t, []string{"scripts/bundle.sh", "--ref=0.2.1", "--prefix=" + cfg.Root}, runner.calls[0].Args)
}

func TestPosixStrategyRelativeRootSpelling(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := testConfig(t, linuxPlatform, nil)
	cfg.Root = "./build/root"
	writeLibs(t, cfg.Root, "libsentencepiece.a")

	result, err := NewPosixStrategy(&fakeRunner{}).Resolve(context.Background(), cfg)
	require.NoError(t, err)

	root := filepath.Join("build", "root")
	assert.Equal(t, root, result.Root)
	assert.Equal(t, []string{filepath.Join(root, "lib", "libsentencepiece.a")}, result.Libraries)
	assert.Equal(t, "-I"+filepath.Join(root, "include"), result.Flags.Compile[1])
	assert.Equal(t, filepath.Join(root, "lib", "libsentencepiece.a"), result.Flags.Link[1])
}

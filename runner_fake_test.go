package nativeext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and answers them with handler.
type fakeRunner struct {
	calls   []*CommandResult
	handler func(name string, args []string) (exitCode int, output []string)
}

func (f *fakeRunner) Run(ctx context.Context, env map[string]string, name string, args ...string) *CommandResult {
	res := &CommandResult{Name: name, Args: append([]string{}, args...), Ran: true}
	if f.handler != nil {
		res.ExitCode, res.Output = f.handler(name, args)
	}
	if res.ExitCode != 0 {
		res.Err = os.ErrProcessDone
	}
	f.calls = append(f.calls, res)
	return res
}

// writeLibs creates empty files named names under <root>/lib.
func writeLibs(t *testing.T, root string, names ...string) {
	t.Helper()
	libDir := filepath.Join(root, "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(libDir, name), []byte("!<arch>\n"), 0o644))
	}
}

// testConfig returns a config rooted in a temp dir with no process env access.
func testConfig(t *testing.T, platform Platform, env map[string]string) *Config {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Platform = platform
	cfg.Root = filepath.Join(dir, "build", "root")
	cfg.Version = "0.2.1"
	cfg.Windows.Candidates = []string{
		filepath.Join(dir, "prebuilt", "root_{{arch}}"),
		filepath.Join(dir, "prebuilt", "root"),
	}
	cfg.Windows.FallbackRoot = filepath.Join(dir, "build", "root")
	cfg.Compiler.OutputDir = filepath.Join(dir, "out")
	cfg.Compiler.DestDirs = []string{filepath.Join(dir, "src")}
	cfg.Getenv = func(key string) string { return env[key] }
	return cfg
}

var (
	linuxPlatform   = Platform{OS: "linux", PointerWidth: 64, Machine: "amd64"}
	windowsPlatform = Platform{OS: "windows", PointerWidth: 64, Machine: "amd64"}
)

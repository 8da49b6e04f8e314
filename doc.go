// Package nativeext prepares the native extension module that wraps a
// prebuilt C++ library (sentencepiece by default) for packaging.
//
// It decides where the wrapped library's static archives come from,
// derives the platform compiler and linker flags, and assembles the
// ExtensionDescriptor consumed by the packaging backend.
//
// # Basic Usage
//
//	config, err := nativeext.LoadConfig("")
//	if err != nil {
//	    return err
//	}
//	config.Logger = nativeext.NewLogger("info", os.Stderr)
//
//	dispatcher := nativeext.NewDispatcher(nativeext.NewProcessRunner(os.Stderr))
//	desc, result, err := dispatcher.Describe(ctx, config)
//
// # Architecture
//
// The dispatcher selects one strategy per platform family:
//
//	Dispatcher
//	├── WindowsStrategy  ../build/root_<arch> → ../build/root → CMake install into ./build/root
//	└── PosixStrategy    ./build/root → ./build_bundled.sh <ref> → ./build/root
//
// Both strategies share the same locate → fallback → re-locate chain and
// end in a FlagSet from SynthesizePosixFlags or SynthesizeWindowsFlags.
// A fallback build that exits non-zero, or that leaves no static library
// behind, is fatal.
//
// # External Processes
//
// Every external step goes through a CommandRunner and yields a
// CommandResult with the exit code and captured output. ProcessRunner is the
// production implementation; tests substitute their own.
//
// # Platform Support
//
// Linux, macOS, AIX, the BSDs and Windows (MSVC). Runs are single-threaded.
package nativeext

package nativeext

import "context"

// FlagSet holds the ordered compiler and linker arguments for the extension.
//
// Order is significant: the linker group bracketing only works when the
// static archives sit between the group markers, and platform decorations
// are appended after the base flags. Entries are only ever appended; the
// only structural change allowed is WrapLinkGroup, which keeps the relative
// order of the existing link entries.
type FlagSet struct {
	Compile []string // Extra compile arguments, in order
	Link    []string // Extra link arguments, in order
}

// NewFlagSet creates a FlagSet seeded with compile flags.
func NewFlagSet(compile ...string) *FlagSet {
	return &FlagSet{
		Compile: append([]string{}, compile...),
		Link:    []string{},
	}
}

// AppendCompile adds compile flags after the existing ones.
func (f *FlagSet) AppendCompile(flags ...string) {
	f.Compile = append(f.Compile, flags...)
}

// AppendLink adds link flags after the existing ones.
func (f *FlagSet) AppendLink(flags ...string) {
	f.Link = append(f.Link, flags...)
}

// WrapLinkGroup brackets the current link flags with start and end.
func (f *FlagSet) WrapLinkGroup(start, end string) {
	wrapped := make([]string, 0, len(f.Link)+2)
	wrapped = append(wrapped, start)
	wrapped = append(wrapped, f.Link...)
	wrapped = append(wrapped, end)
	f.Link = wrapped
}

// Clone returns a deep copy of the flag set.
func (f *FlagSet) Clone() *FlagSet {
	if f == nil {
		return NewFlagSet()
	}
	return &FlagSet{
		Compile: append([]string{}, f.Compile...),
		Link:    append([]string{}, f.Link...),
	}
}

// ResolveResult describes how the flags for an install root were obtained.
//
// After a strategy resolves, this structure provides:
//   - Root and Libraries that the flags were synthesized from
//   - Flags with the final compile and link arguments
//   - Commands run by any fallback build, with their captured output
//   - FallbackUsed reporting whether a bundled or CMake build was needed
type ResolveResult struct {
	Strategy     string           // Name of the strategy that resolved the flags
	Architecture ArchitectureTag  // Target architecture (Windows pipeline only)
	Root         string           // Install root the libraries were found in
	Libraries    []string         // Static libraries, in directory-listing order
	Flags        *FlagSet         // Final compile/link flags
	Output       []string         // Lines of output from fallback build steps
	Commands     []*CommandResult // External commands that were run
	FallbackUsed bool             // True if a fallback build was invoked
}

// BuildResult contains the output and status of compiling the extension module.
type BuildResult struct {
	Success    bool     // True if the compile completed successfully
	Output     []string // Lines of output from the compiler
	Extensions []string // Paths to the built extension modules
	Error      error    // Error if the compile failed, nil otherwise
}

// ResolveSteps describes one platform's ordered fallback chain.
//
// Both platform pipelines follow the same shape:
//  1. Try each candidate install root in order
//  2. If none yields a static library, run the fallback build
//  3. Re-locate libraries under FallbackRoot, which must now yield some
//  4. Synthesize flags from the root that produced libraries
//
// Example usage in a strategy:
//
//	return resolveWithFallback(ctx, config, ResolveSteps{
//	    Candidates:   []string{config.Root},
//	    Suffix:       ".a",
//	    FallbackName: "bundled build",
//	    FallbackFunc: s.bundled.Build,
//	    FallbackRoot: config.Root,
//	    FlagsFunc:    synthesize,
//	})
type ResolveSteps struct {
	// Candidates are install roots tried in order before any fallback.
	Candidates []string

	// Suffix is the static library suffix (".a" or ".lib").
	Suffix string

	// FallbackName names the fallback step in logs and errors.
	FallbackName string

	// FallbackFunc produces the libraries when no candidate has any.
	FallbackFunc func(ctx context.Context, config *Config, result *ResolveResult) error

	// FallbackRoot is the install root re-queried after the fallback build.
	FallbackRoot string

	// FlagsFunc turns a root and its libraries into the final flags.
	FlagsFunc func(root string, libs []string) *FlagSet
}

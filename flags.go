package nativeext

import "path/filepath"

// Compiler and linker flags used by the synthesizers
const (
	flagCxx17         = "-std=c++17"
	flagMacOSMin      = "-mmacosx-version-min=10.9"
	flagStripSymbols  = "-Wl,-s"
	flagStripAll      = "-Wl,-strip-all"
	flagGroupStart    = "-Wl,--start-group"
	flagGroupEnd      = "-Wl,--end-group"
	flagBsymbolic     = "-Wl,-Bsymbolic"
	flagMSVCCxx17     = "/std:c++17"
	flagMSVCIncludePf = "/I"
)

// SynthesizePosixFlags builds compile and link flags for a POSIX host.
//
// The composition order is fixed:
//
//	compile: -std=c++17 -I<root>/include [platform flag]
//	link:    -Wl,--start-group <libs...> [-Wl,-s] -Wl,--end-group [-Wl,-Bsymbolic]
//
// Darwin gets a minimum deployment target on the compile side. AIX strips
// symbols on both sides. Other Unix hosts strip on the compile side only,
// and Linux additionally binds symbols locally after the group closes.
func SynthesizePosixFlags(root string, libs []string, family HostFamily) *FlagSet {
	flags := NewFlagSet(flagCxx17, "-I"+filepath.Join(root, "include"))
	flags.AppendLink(libs...)

	switch family {
	case FamilyDarwin:
		// Older macOS toolchains default to a libstdc++ target without C++17.
		flags.AppendCompile(flagMacOSMin)
	case FamilyAIX:
		flags.AppendCompile(flagStripSymbols)
		flags.AppendLink(flagStripSymbols)
	default:
		flags.AppendCompile(flagStripAll)
	}

	flags.WrapLinkGroup(flagGroupStart, flagGroupEnd)

	if family == FamilyLinux {
		flags.AppendLink(flagBsymbolic)
	}

	return flags
}

// SynthesizeWindowsFlags builds MSVC compile and link flags for an install root.
func SynthesizeWindowsFlags(root string, libs []string) *FlagSet {
	flags := NewFlagSet(flagMSVCCxx17, flagMSVCIncludePf+filepath.Join(root, "include"))
	flags.AppendLink(libs...)
	return flags
}

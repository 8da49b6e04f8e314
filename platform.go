package nativeext

import (
	"runtime"
	"strconv"
	"strings"
)

// Platform constants
const (
	platformWindows = "windows"
	platformDarwin  = "darwin"
	platformAIX     = "aix"
	platformLinux   = "linux"

	// archOverrideARM64 is the override value that forces an arm64 target.
	archOverrideARM64 = "ARM64"
)

// HostFamily groups operating systems that share a flag recipe.
type HostFamily int

const (
	FamilyUnknown   HostFamily = iota
	FamilyLinux                // Generic Linux: strip-all, group bracketing, -Bsymbolic
	FamilyDarwin               // macOS: minimum deployment target
	FamilyAIX                  // Legacy Unix: strip symbols on compile and link
	FamilyOtherUnix            // Every other non-Windows OS: strip-all, group bracketing
	FamilyWindows              // MSVC pipeline with CMake fallback
)

func (f HostFamily) String() string {
	switch f {
	case FamilyLinux:
		return "linux"
	case FamilyDarwin:
		return "darwin"
	case FamilyAIX:
		return "aix"
	case FamilyOtherUnix:
		return "unix"
	case FamilyWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// Platform describes the host the extension is built on.
type Platform struct {
	OS           string // GOOS-style name: linux, darwin, aix, windows, freebsd, ...
	PointerWidth int    // 32 or 64
	Machine      string // Machine identifier, e.g. amd64, arm64, ARM64
}

// HostPlatform returns the platform this process runs on.
func HostPlatform() Platform {
	return Platform{
		OS:           runtime.GOOS,
		PointerWidth: strconv.IntSize,
		Machine:      runtime.GOARCH,
	}
}

// Family classifies the platform's operating system.
func (p Platform) Family() HostFamily {
	switch strings.ToLower(p.OS) {
	case platformWindows:
		return FamilyWindows
	case platformDarwin, "ios":
		return FamilyDarwin
	case platformAIX:
		return FamilyAIX
	case platformLinux, "android":
		return FamilyLinux
	case "":
		return FamilyUnknown
	default:
		// BSDs, Solaris and anything else that is not Windows.
		return FamilyOtherUnix
	}
}

func (p Platform) String() string {
	return p.OS + "/" + p.Machine
}

// ArchitectureTag identifies the target architecture on the Windows pipeline.
type ArchitectureTag string

const (
	ArchWin32 ArchitectureTag = "win32"
	ArchAMD64 ArchitectureTag = "amd64"
	ArchARM64 ArchitectureTag = "arm64"
)

// DetectArchitecture derives the target architecture.
//
// Rules, lowest priority first:
//   - 64-bit pointers select amd64, anything else win32
//   - a machine string containing "arm" selects arm64
//   - an override equal to "ARM64" selects arm64 unconditionally
//
// The override exists for cross-compiling wheel builders whose host
// architecture differs from the target.
func DetectArchitecture(pointerWidth int, machine, override string) ArchitectureTag {
	arch := ArchWin32
	if pointerWidth > 32 {
		arch = ArchAMD64
	}
	if strings.Contains(strings.ToLower(machine), "arm") {
		arch = ArchARM64
	}
	if override == archOverrideARM64 {
		arch = ArchARM64
	}
	return arch
}

// CMakeArchitecture maps an architecture tag to the CMake -A platform name.
func CMakeArchitecture(arch ArchitectureTag) string {
	switch arch {
	case ArchAMD64:
		return "x64"
	case ArchARM64:
		return "ARM64"
	default:
		return "Win32"
	}
}

// StaticLibrarySuffix returns the static archive suffix for the platform.
func StaticLibrarySuffix(p Platform) string {
	if p.Family() == FamilyWindows {
		return ".lib"
	}
	return ".a"
}

package nativeext

import (
	"os"
	"path/filepath"
	"strings"
)

// LocateStaticLibraries lists static archives under root's lib directory.
//
// Entries are returned as <root>/lib/<name> in directory-listing order.
// A missing or unreadable lib directory yields an empty slice: absence of
// artifacts is the normal trigger for a fallback build, not an error.
func LocateStaticLibraries(root, suffix string) []string {
	libDir := filepath.Join(root, "lib")

	entries, err := os.ReadDir(libDir)
	if err != nil {
		return []string{}
	}

	libs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		libs = append(libs, filepath.Join(libDir, entry.Name()))
	}

	return libs
}

package nativeext

import (
	"fmt"
	"strings"
)

// MatchesExtension checks if a filename has any of the given extensions.
//
// This is a case-insensitive check, with or without the leading dot.
//
//	if MatchesExtension(source, ".cxx", ".cpp", ".cc", ".c") {
//	    // This is a C/C++ translation unit
//	}
func MatchesExtension(filename string, extensions ...string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// BuildError creates a standardized build error with output context.
//
// This helper formats build errors consistently across all build steps,
// including the captured output so the failure can be diagnosed from
// build logs alone. The underlying error stays reachable via errors.Is.
//
// With error and output:
//
//	CMake Build build failed: external build failed: cmake exited with status 1
//
//	Build output:
//	-- Configuring incomplete, errors occurred!
//
// With output but no error:
//
//	CMake Build build failed
//
//	Build output:
//	... output lines ...
func BuildError(step string, output []string, err error) error {
	outputStr := strings.TrimSpace(strings.Join(output, "\n"))

	if err == nil {
		if outputStr != "" {
			return fmt.Errorf("%s build failed\n\nBuild output:\n%s", step, outputStr)
		}
		return fmt.Errorf("%s build failed", step)
	}

	if outputStr != "" {
		return fmt.Errorf("%s build failed: %w\n\nBuild output:\n%s", step, err, outputStr)
	}

	return fmt.Errorf("%s build failed: %w", step, err)
}

// splitLines splits captured process output into lines, dropping the
// trailing empty line left by a final newline.
func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// expandPlaceholders replaces {{key}} markers in each argument.
func expandPlaceholders(args []string, values map[string]string) []string {
	expanded := make([]string, len(args))
	for i, arg := range args {
		for key, value := range values {
			arg = strings.ReplaceAll(arg, "{{"+key+"}}", value)
		}
		expanded[i] = arg
	}
	return expanded
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}

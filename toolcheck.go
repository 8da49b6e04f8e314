package nativeext

import (
	"fmt"
	"os/exec"
	"strings"
)

// execLookPath is swapped out in tests.
var execLookPath = exec.LookPath

// ToolChecker is an optional interface for components that require external tools.
//
// Strategies, the bundled builder and the extension compiler implement it
// so the CLI can fail fast before any build step runs:
//
//	if checker, ok := strategy.(ToolChecker); ok {
//	    if err := checker.CheckTools(); err != nil {
//	        return fmt.Errorf("build tools missing: %w", err)
//	    }
//	}
type ToolChecker interface {
	// RequiredTools returns the list of tools this component needs.
	RequiredTools() []ToolRequirement

	// CheckTools verifies that all required tools are available.
	// Optional tools don't cause errors if missing.
	CheckTools() error
}

// ToolRequirement describes a build tool dependency.
//
// Tool with alternatives:
//
//	ToolRequirement{
//	    Name:         "c++",
//	    Alternatives: []string{"g++", "clang++"},
//	    Purpose:      "C++ compiler",
//	}
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cmake", "bash").
	Name string

	// Alternatives can satisfy the requirement if Name is missing.
	Alternatives []string

	// Optional tools are reported but never fail a check.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// ToolStatus is the outcome of checking one requirement.
type ToolStatus struct {
	Requirement ToolRequirement
	Found       string // Tool name that satisfied the requirement, empty if none
	Path        string // Resolved path of the found tool
}

// Satisfied reports whether the requirement was met or is optional.
func (s ToolStatus) Satisfied() bool {
	return s.Found != "" || s.Requirement.Optional
}

// InspectTools resolves every requirement, trying alternatives in order.
func InspectTools(requirements []ToolRequirement) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(requirements))

	for _, req := range requirements {
		status := ToolStatus{Requirement: req}
		for _, candidate := range append([]string{req.Name}, req.Alternatives...) {
			if path, err := execLookPath(candidate); err == nil {
				status.Found = candidate
				status.Path = path
				break
			}
		}
		statuses = append(statuses, status)
	}

	return statuses
}

// CheckRequiredTools verifies all required tools are available.
//
// Returns nil if all required tools are found, or a single error listing
// every missing required tool:
//
//	tool not found: cmake (CMake build system), c++ (C++ compiler)
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, status := range InspectTools(requirements) {
		if status.Satisfied() {
			continue
		}
		req := status.Requirement
		if req.Purpose != "" {
			missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
		} else {
			missingTools = append(missingTools, req.Name)
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrToolNotFound, strings.Join(missingTools, ", "))
}

package nativeext

import (
	"errors"
	"fmt"
)

var (
	// ErrNoArtifacts indicates no static library could be found, even after a fallback build
	ErrNoArtifacts = errors.New("no static libraries found")

	// ErrExternalBuild indicates an invoked build process exited unsuccessfully
	ErrExternalBuild = errors.New("external build failed")

	// ErrUnsupportedPlatform indicates no strategy handles the host platform
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrVersionNotFound indicates the version file declares no version
	ErrVersionNotFound = errors.New("version not found")

	// ErrInvalidDescriptor indicates the extension descriptor cannot be built
	ErrInvalidDescriptor = errors.New("invalid extension descriptor")

	// ErrToolNotFound indicates a required build tool is not in PATH
	ErrToolNotFound = errors.New("tool not found")
)

// StepError wraps an error with the resolution step that produced it
type StepError struct {
	Step string // Step that failed (e.g. "bundled build", "cmake configure")
	Root string // Install root involved, if any
	Err  error  // Underlying error
}

func (e *StepError) Error() string {
	if e.Root != "" {
		return fmt.Sprintf("%s (root %s): %v", e.Step, e.Root, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

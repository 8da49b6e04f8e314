package nativeext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

// CommandResult is the structured outcome of one external build step.
type CommandResult struct {
	Name     string   // Program that was invoked
	Args     []string // Arguments passed to the program
	ExitCode int      // Process exit status, 0 on success
	Ran      bool     // False if the program could not be started
	Output   []string // Combined stdout/stderr lines
	Err      error    // Non-nil if the program failed or could not start
}

// Success reports whether the command ran and exited with status 0.
func (r *CommandResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandLine renders the invocation for logs and error messages.
func (r *CommandResult) CommandLine() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	return r.Name + " " + strings.Join(r.Args, " ")
}

// CommandRunner executes external build processes synchronously.
//
// Implementations never return a nil result. A failed process is reported
// through CommandResult.Err and ExitCode rather than a separate error so
// callers and tests can inspect exactly what happened.
type CommandRunner interface {
	Run(ctx context.Context, env map[string]string, name string, args ...string) *CommandResult
}

// ProcessRunner starts external processes directly.
//
// Arguments reach the process verbatim, so link flags such as
// -Wl,-rpath,$ORIGIN survive. Commands run in the current working
// directory with env layered over the process environment. Output is
// captured and, when Output is set, streamed to it as the process writes.
// Canceling ctx kills a running process.
type ProcessRunner struct {
	Output io.Writer
}

// NewProcessRunner creates a runner that streams process output to w.
func NewProcessRunner(w io.Writer) *ProcessRunner {
	return &ProcessRunner{Output: w}
}

// Run executes name with args and returns the structured result.
func (r *ProcessRunner) Run(ctx context.Context, env map[string]string, name string, args ...string) *CommandResult {
	result := &CommandResult{
		Name: name,
		Args: append([]string{}, args...),
	}

	if err := ctx.Err(); err != nil {
		result.ExitCode = -1
		result.Err = err
		return result
	}

	var buf bytes.Buffer
	// A single writer for both streams makes os/exec serialize writes.
	w := io.Writer(&buf)
	if r.Output != nil {
		w = io.MultiWriter(&buf, r.Output)
	}

	cmd := exec.CommandContext(ctx, name, result.Args...)
	cmd.Env = os.Environ()
	for key, value := range env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	result.Ran = sh.CmdRan(err)
	result.Output = splitLines(buf.String())

	if err != nil {
		result.ExitCode = sh.ExitStatus(err)
		result.Err = errors.WithMessagef(err, "running %s", result.CommandLine())
	}

	return result
}

// externalStepError converts a failed command into a fatal step error.
func externalStepError(step, root string, res *CommandResult) error {
	cause := fmt.Errorf("%w: %s exited with status %d", ErrExternalBuild, res.CommandLine(), res.ExitCode)
	if !res.Ran {
		cause = fmt.Errorf("%w: %s could not be started: %v", ErrExternalBuild, res.Name, res.Err)
	}
	return &StepError{
		Step: step,
		Root: root,
		Err:  BuildError(step, res.Output, cause),
	}
}

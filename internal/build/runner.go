// Package build runs the transforms that turn watched sources into outputs:
// templating HTML documents through the rewriter and the external formatter,
// and bundling scripts with the external bundler.
package build

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"

	"github.com/conneroisu/htmplate/internal/errors"
	"github.com/conneroisu/htmplate/internal/validation"
)

// allowedTools may be configured as formatter or bundler.
var allowedTools = map[string]bool{
	"deno": true,
}

// Runner starts external processes.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin []byte) (stdout, stderr []byte, err error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// LookPath implements Runner.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner. The process is killed when ctx is cancelled.
func (ExecRunner) Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// tool is an external program invoked through a Runner.
type tool struct {
	runner  Runner
	command string
}

// run validates and runs the tool with flags followed by operands. Only the
// command and flags are validated since operands are file paths. Failures
// are returned as *errors.SubprocessError.
func (t tool) run(ctx context.Context, flags, operands []string, stdin []byte) ([]byte, error) {
	if err := t.validate(flags); err != nil {
		return nil, &errors.SubprocessError{Tool: t.command, Cause: err}
	}

	path, err := t.runner.LookPath(t.command)
	if err != nil {
		return nil, errors.NewToolMissingError(t.command, err)
	}

	args := append(append([]string{}, flags...), operands...)
	stdout, stderr, err := t.runner.Run(ctx, path, args, stdin)
	if err != nil {
		subprocessErr := &errors.SubprocessError{
			Tool:   t.command,
			Stderr: string(stderr),
			Cause:  err,
		}
		var exitErr interface{ ExitCode() int }
		if stderrors.As(err, &exitErr) {
			subprocessErr.Status = exitErr.ExitCode()
		}
		return nil, subprocessErr
	}

	return stdout, nil
}

func (t tool) validate(flags []string) error {
	if err := validation.ValidateCommand(t.command, allowedTools); err != nil {
		return fmt.Errorf("command validation failed: %w", err)
	}
	for _, arg := range flags {
		if err := validation.ValidateArgument(arg); err != nil {
			return fmt.Errorf("invalid argument '%s': %w", arg, err)
		}
	}
	return nil
}

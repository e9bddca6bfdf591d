// Package command runs external tools (the cloud CLI, the package manager) as subprocesses.
package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
)

// Cmd describes one invocation.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env replaces the process environment when non-nil.
	Env []string
	// Stdout and Stderr receive the live output in addition to the captured copy.
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of a command that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands.
type Runner interface {
	// Run executes cmd and waits for it. A non-zero exit status is returned as a
	// *errors.CommandError carrying the tail of stderr.
	Run(ctx context.Context, cmd Cmd) (*Result, error)
	// LookPath resolves an executable on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// NewExecRunner creates a runner that logs every invocation at debug level.
func NewExecRunner(log *slog.Logger) *ExecRunner {
	return &ExecRunner{logger: log}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) (*Result, error) {
	log := logger.DeriveRequestLogger(ctx, r.logger)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // command lines are built internally
	c.Dir = cmd.Dir
	c.Env = cmd.Env

	var stdout bytes.Buffer
	stderr := newTailBuffer(constants.StderrTailBytes)
	c.Stdout = teeWriter(&stdout, cmd.Stdout)
	c.Stderr = teeWriter(stderr, cmd.Stderr)

	log.Debug("running command", "command", cmd.String(), "dir", cmd.Dir)

	err := c.Run()
	result := &Result{
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		log.Debug("command finished", "command", cmd.String())
		return result, nil
	}

	cmdErr := &apperrors.CommandError{
		Command:  cmd.String(),
		ExitCode: -1,
		Stderr:   result.Stderr,
		Cause:    err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	result.ExitCode = cmdErr.ExitCode

	log.Debug("command failed", "command", cmd.String(), "exit_code", cmdErr.ExitCode, "error", err)

	return result, cmdErr
}

func teeWriter(capture, live io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(capture, live)
}

package testing

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"sync"

	"github.com/runvoy/sitedeploy/internal/command"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
)

// FakeRunner records commands instead of running them.
type FakeRunner struct {
	mu       sync.Mutex
	commands []command.Cmd

	// Handler decides the outcome of each command. A nil Handler succeeds with empty output.
	Handler func(cmd command.Cmd) (*command.Result, error)
	// Missing lists executables LookPath does not find.
	Missing []string
}

var _ command.Runner = (*FakeRunner)(nil)

// Run implements command.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd command.Cmd) (*command.Result, error) {
	cmd.Args = slices.Clone(cmd.Args)
	cmd.Env = slices.Clone(cmd.Env)

	f.mu.Lock()
	f.commands = append(f.commands, cmd)
	f.mu.Unlock()

	if f.Handler == nil {
		return &command.Result{}, nil
	}
	return f.Handler(cmd)
}

// LookPath implements command.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	if slices.Contains(f.Missing, name) {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Commands returns the recorded commands in order.
func (f *FakeRunner) Commands() []command.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.commands)
}

// CommandLines returns the recorded command lines in order.
func (f *FakeRunner) CommandLines() []string {
	cmds := f.Commands()
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, c.String())
	}
	return lines
}

// Failure builds the outcome of a command that exited with a non-zero status.
func Failure(cmd command.Cmd, exitCode int, stderr string) (*command.Result, error) {
	return &command.Result{ExitCode: exitCode, Stderr: stderr}, &apperrors.CommandError{
		Command:  cmd.String(),
		ExitCode: exitCode,
		Stderr:   stderr,
		Cause:    fmt.Errorf("exit status %d", exitCode),
	}
}

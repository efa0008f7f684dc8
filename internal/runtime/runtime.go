package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

var ErrRuntime = errors.New("runtime error")

// Default binary name when discovery finds nothing.
const defaultBinary = "docker"

// Locates the docker binary.
//
// An explicit override wins. Otherwise PATH is consulted first, then
// well-known install locations (Docker Desktop on macOS, Homebrew). Falls
// back to the bare name so a later exec failure carries a useful error.
func Find(override string) string {
	if override != "" {
		return override
	}

	if p, err := exec.LookPath(defaultBinary); err == nil {
		return p
	}

	candidates := []string{
		"/Applications/Docker.app/Contents/Resources/bin/docker",
		"/usr/local/bin/docker",
		"/opt/homebrew/bin/docker",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return defaultBinary
}

// Launches container invocations as host child processes.
type Runner struct{}

// Launches the argument vector as a child process and waits for it to
// finish.
//
// The child inherits the standard streams so build and program output reach
// the user directly, and runs with the workspace as its working directory.
// Cancellation of ctx (user interrupt) and a non-zero child exit are both
// treated as normal termination: the tool never interprets the child's own
// exit status. Only a failure to launch the process at all is an error.
func (Runner) Run(ctx context.Context, argv []string, dir string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}

	slog.Debug("launching container", "argv", argv, "dir", dir)

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		slog.Info("interrupted, cleaning up")
		return nil
	case errors.As(err, &exitErr):
		// The child's exit status is opaque to this tool.
		slog.Debug("child exited non-zero", "code", exitErr.ExitCode())
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrRuntime, err)
	}
}

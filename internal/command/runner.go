package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"
)

// ErrNotFound reports that the requested binary does not exist on PATH.
// Callers treat it as a probe miss, not a failure worth surfacing.
var ErrNotFound = errors.New("command not found")

// Runner executes external system tools with a bounded runtime so a hung
// tool cannot hang the whole report.
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a runner with the given per-command timeout
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// Available reports whether a binary can be found on PATH
func (r *Runner) Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Output runs name with args and returns its stdout. A missing binary
// returns ErrNotFound. A non-zero exit returns an error wrapping the exit
// status together with any stderr text, since tools like lastb use it to
// report permission problems.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	// Run the tool in its own process group and kill the whole group on
	// deadline, so children it forked die with it instead of holding the
	// stdout pipe open past the timeout.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// Wait must not block on the pipes longer than this once the tool has
	// exited or been killed.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrWaitDelay):
			// the tool exited cleanly; a stray grandchild kept the pipes
			// open and was abandoned
			return stdout.String(), nil
		case ctx.Err() != nil:
			return "", fmt.Errorf("%s timed out after %s", name, r.timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s exited %d: %s", name, exitErr.ExitCode(), bytes.TrimSpace(stderr.Bytes()))
		}
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return stdout.String(), nil
}

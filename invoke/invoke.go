// Package invoke is the process-invocation boundary: it runs external
// commands with fully buffered output and an explicit exit status.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrLaunch means the executable could not be resolved at all. A tool that
// runs and exits non-zero is not an ErrLaunch; that exit code is data for the
// caller to judge.
var ErrLaunch = errors.New("executable not found")

// Result captures exactly one invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Run executes name with args in dir (empty means inherit the current
// directory) and blocks until the child exits. Output is buffered in full.
// Cancelling ctx kills the child. A non-zero exit comes back as a Result with
// a nil error; only launch and context failures are errors.
func Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running command", "name", name, "args", strings.Join(args, " "), "dir", dir)

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("%w: %s", ErrLaunch, name)
		default:
			return nil, fmt.Errorf("running %s: %w", name, err)
		}
	}
	return res, nil
}

// PrependPath puts dir at the front of the executable search path so that a
// tool just installed there wins resolution over anything already on PATH.
// The change is process-local and deliberately not undone: the test process
// exits when the run completes.
func PrependPath(dir string) error {
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

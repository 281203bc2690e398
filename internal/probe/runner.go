package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"time"
)

var (
	// ErrToolUnavailable means the executable or file could not be found or opened.
	ErrToolUnavailable = errors.New("tool unavailable")
	// ErrToolFailed means the tool ran but exited non-zero.
	ErrToolFailed = errors.New("tool failed")
	// ErrTimeout means the per-invocation deadline expired.
	ErrTimeout = errors.New("tool timed out")
)

// Output is what a single external invocation produced.
type Output struct {
	Stdout string
	Stderr string
	Err    error
}

// Runner gives adapters access to the host: process execution and file reads.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Output
	ReadFile(ctx context.Context, path string) Output
}

// ExecRunner runs real processes with a bounded per-invocation timeout.
type ExecRunner struct {
	Timeout time.Duration
}

const defaultRunTimeout = 5 * time.Second

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) Output {
	path, err := exec.LookPath(name)
	if err != nil {
		return Output{Err: fmt.Errorf("%w: %s: %v", ErrToolUnavailable, name, err)}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Shell indirection can leave grandchildren holding the pipes open.
	cmd.WaitDelay = time.Second

	err = cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out
	}

	switch {
	case ctx.Err() != nil:
		out.Err = fmt.Errorf("%s: %w", name, ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.Err = fmt.Errorf("%w: %s after %s", ErrTimeout, name, timeout)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
		out.Err = fmt.Errorf("%w: %s: %v", ErrToolUnavailable, name, err)
	default:
		out.Err = fmt.Errorf("%w: %s: %v", ErrToolFailed, name, err)
	}
	return out
}

func (r ExecRunner) ReadFile(ctx context.Context, path string) Output {
	if err := ctx.Err(); err != nil {
		return Output{Err: err}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Output{Err: fmt.Errorf("%w: %v", ErrToolUnavailable, err)}
	}
	return Output{Stdout: string(b)}
}

// Classify maps an invocation error to a short label for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrNoInterfaces):
		return "no_interfaces"
	case errors.Is(err, ErrToolUnavailable):
		return "unavailable"
	default:
		return "failed"
	}
}

package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Invocation is a fully resolved command ready to execute: program, args
// and the complete environment for the child process.
type Invocation struct {
	Program string
	Args    []string
	Env     []string

	// ModuleDir is the parent directory of the owning module's file.
	// The host executor does not change into it (children inherit the
	// caller's working directory); the sandbox executor mounts it.
	ModuleDir string
}

// Result holds a finished child process's captured output and exit status.
// Output is buffered to completion, never streamed.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Executor runs a single invocation to completion. A non-zero exit is not
// an executor error; only a failure to launch is.
type Executor interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// HostExecutor spawns invocations directly on the host with os/exec.
type HostExecutor struct {
	// Timeout bounds each child process. Zero means no limit.
	Timeout time.Duration
}

// Run spawns the invocation synchronously and waits for it to exit,
// capturing stdout and stderr in full.
func (e *HostExecutor) Run(ctx context.Context, inv Invocation) (Result, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Env = inv.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, &SpawnError{Program: inv.Program, Err: err}
	}
	return result, nil
}

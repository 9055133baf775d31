package sandbox

import (
	"context"
	"strings"
	"time"

	"github.com/genrun-dev/genrun/pkg/runner"
)

// Executor runs invocations in containers. It satisfies runner.Executor so
// the engine's sequencing, filtering, and output policy stay identical
// between host and sandboxed runs.
type Executor struct {
	Image       string
	MemoryLimit string
	CPULimit    int
	Timeout     time.Duration
}

// Run executes one invocation in a fresh container. GENRUN_DIR is rewritten
// to the in-container workspace path, since the host path is meaningless
// inside the mount namespace.
func (e *Executor) Run(ctx context.Context, inv runner.Invocation) (runner.Result, error) {
	env := make([]string, 0, len(inv.Env))
	for _, kv := range inv.Env {
		if strings.HasPrefix(kv, runner.EnvDir+"=") {
			env = append(env, runner.EnvDir+"="+workspacePath)
			continue
		}
		env = append(env, kv)
	}

	result, err := RunContainer(ctx, ContainerConfig{
		Image:       e.Image,
		Program:     inv.Program,
		Args:        inv.Args,
		Env:         env,
		ModuleDir:   inv.ModuleDir,
		MemoryLimit: e.MemoryLimit,
		CPULimit:    e.CPULimit,
		Timeout:     e.Timeout,
	})
	if err != nil {
		return runner.Result{}, &runner.SpawnError{Program: inv.Program, Err: err}
	}
	return runner.Result{
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		ExitCode: result.ExitCode,
		Duration: result.Duration,
	}, nil
}

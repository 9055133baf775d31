// Package runner is the generate dispatch engine. It walks an ordered
// module sequence, extracts //genrun:generate directives, expands aliases,
// applies the configured filters, and executes the survivors strictly one
// at a time in source order.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genrun-dev/genrun/pkg/directive"
	"github.com/genrun-dev/genrun/pkg/filter"
	"github.com/genrun-dev/genrun/pkg/module"
)

// Options is the immutable configuration for one generate run.
type Options struct {
	// Include and Ignore are glob sets gating which modules are scanned.
	Include []string
	Ignore  []string

	// Run and Skip are optional regular expressions matched against each
	// directive's original comment text.
	Run  string
	Skip string

	// Verbose announces each command before it runs. DryRun stops after
	// the announcement without spawning anything. Trace reports each
	// child's exit status after its output.
	Verbose bool
	DryRun  bool
	Trace   bool

	// FailFast aborts the whole run on the first failure. The default is
	// to report and continue with the next directive or module.
	FailFast bool

	// Allow, when non-empty, restricts which programs directives may
	// invoke: an entry matches the bare program name or a prefix of the
	// full command line.
	Allow []string
}

// Record describes one directive considered by the engine, as handed to a
// Recorder after the directive is executed (or would have been, on a dry
// run).
type Record struct {
	Time      time.Time
	Module    string
	Line      int
	Character int
	Program   string
	Args      []string
	DryRun    bool
	ExitCode  int
	Duration  time.Duration
	Err       string
}

// Recorder receives one entry per considered directive. A nil Recorder
// disables journaling.
type Recorder interface {
	Record(r Record) error
}

// Runner executes generate directives for a module sequence.
type Runner struct {
	opts       Options
	paths      *filter.PathFilter
	directives *filter.DirectiveFilter
	exec       Executor
	out        io.Writer
	logger     *log.Logger
	recorder   Recorder
}

// New validates opts and returns a Runner writing progress and captured
// output to out. Malformed glob or regex patterns fail here, before any
// module is scanned. A nil executor defaults to host execution, a nil out
// to stdout, and a nil logger discards diagnostics.
func New(opts Options, exec Executor, out io.Writer, logger *log.Logger, recorder Recorder) (*Runner, error) {
	paths, err := filter.NewPathFilter(opts.Include, opts.Ignore)
	if err != nil {
		return nil, err
	}
	directives, err := filter.NewDirectiveFilter(opts.Run, opts.Skip)
	if err != nil {
		return nil, err
	}
	if exec == nil {
		exec = &HostExecutor{}
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		opts:       opts,
		paths:      paths,
		directives: directives,
		exec:       exec,
		out:        out,
		logger:     logger,
		recorder:   recorder,
	}, nil
}

// Run processes modules strictly in order; within a module, directives run
// in source order, and no directive starts before the previous one has
// completed. Parse-time failures abort only the offending module; runtime
// failures honor the FailFast policy. The returned error is the aborting
// failure under FailFast, or a summary when failures were reported along
// the way.
func (r *Runner) Run(ctx context.Context, modules []module.Module) error {
	var failures int
	for i := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}

		mod := modules[i]
		path, err := mod.Path()
		if err != nil {
			r.logger.Error("unresolvable module specifier", "module", mod.Specifier, "err", err)
			failures++
			if r.opts.FailFast {
				return &ModuleError{Specifier: mod.Specifier, Err: err}
			}
			continue
		}
		if !r.paths.Match(path) {
			continue
		}

		if err := r.runModule(ctx, mod, &failures); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("generate: %d failure(s)", failures)
	}
	return nil
}

// runModule parses one module and executes its surviving directives. A
// non-nil return aborts the whole run; reported-and-continued failures are
// tallied through failures instead.
func (r *Runner) runModule(ctx context.Context, mod module.Module, failures *int) error {
	parsed, err := directive.Parse(mod.Source)
	if err != nil {
		merr := &ModuleError{Specifier: mod.Specifier, Err: err}
		var perr *directive.ParseError
		if errors.As(err, &perr) {
			merr.Line, merr.Character = perr.Line, perr.Character
		}
		if r.opts.FailFast {
			return merr
		}
		r.logger.Error("skipping module: parse failed", "module", mod.Specifier, "err", err)
		*failures++
		return nil
	}

	// The registry is scoped to this module's scan; aliases never leak
	// across modules.
	aliases := directive.NewRegistry(parsed)

	for _, d := range parsed {
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsAlias() {
			aliases.Define(d.AliasName, d.Command, d.Args)
			continue
		}
		if !r.directives.Match(d.Original) {
			continue
		}

		resolved, err := aliases.Expand(d)
		if err != nil {
			if r.opts.FailFast {
				return &ModuleError{Specifier: mod.Specifier, Line: d.Line, Character: d.Character, Err: err}
			}
			r.logger.Error("skipping directive", "module", mod.Specifier, "err", err)
			*failures++
			continue
		}

		if err := r.runDirective(ctx, mod, resolved); err != nil {
			if r.opts.FailFast {
				return err
			}
			r.logger.Error("directive failed", "module", mod.Specifier, "err", err)
			*failures++
		}
	}
	return nil
}

// runDirective executes one resolved directive end to end: allowlist check,
// environment derivation, announcement, spawn, and output relay.
func (r *Runner) runDirective(ctx context.Context, mod module.Module, d directive.Directive) error {
	if err := r.checkAllowed(d); err != nil {
		return &ModuleError{Specifier: mod.Specifier, Line: d.Line, Character: d.Character, Err: err}
	}

	env, err := deriveEnv(os.Environ(), mod, d)
	if err != nil {
		return &ModuleError{Specifier: mod.Specifier, Line: d.Line, Character: d.Character, Err: err}
	}
	dir, _ := mod.Dir()

	inv := Invocation{
		Program:   d.Command,
		Args:      d.Args,
		Env:       env,
		ModuleDir: dir,
	}

	if r.opts.Verbose || r.opts.DryRun {
		fmt.Fprintf(r.out, "Running %s in <%s>\n", d.CommandLine(), mod.Specifier)
	}
	if r.opts.DryRun {
		r.record(mod, d, Record{DryRun: true})
		return nil
	}

	result, err := r.exec.Run(ctx, inv)
	if err != nil {
		r.record(mod, d, Record{ExitCode: -1, Duration: result.Duration, Err: err.Error()})
		return &ModuleError{Specifier: mod.Specifier, Line: d.Line, Character: d.Character, Err: err}
	}
	r.record(mod, d, Record{ExitCode: result.ExitCode, Duration: result.Duration})

	// Captured output is always relayed, whatever the exit status.
	fmt.Fprintf(r.out, "stdout: %s\n", result.Stdout)
	fmt.Fprintf(r.out, "stderr: %s\n", result.Stderr)
	if r.opts.Trace {
		fmt.Fprintf(r.out, "exit status %d\n", result.ExitCode)
	}

	if result.ExitCode != 0 && r.opts.FailFast {
		return &ModuleError{
			Specifier: mod.Specifier,
			Line:      d.Line,
			Character: d.Character,
			Err:       &NonZeroExitError{Program: d.Command, ExitCode: result.ExitCode},
		}
	}
	return nil
}

// checkAllowed enforces the optional program allowlist.
func (r *Runner) checkAllowed(d directive.Directive) error {
	if len(r.opts.Allow) == 0 {
		return nil
	}
	full := d.CommandLine()
	for _, allowed := range r.opts.Allow {
		if allowed == d.Command || strings.HasPrefix(full, allowed) {
			return nil
		}
	}
	return fmt.Errorf("program %q is not in the allowlist", d.Command)
}

// record hands one journal entry to the recorder, filling in the fields
// shared by every entry.
func (r *Runner) record(mod module.Module, d directive.Directive, entry Record) {
	if r.recorder == nil {
		return
	}
	entry.Time = time.Now()
	entry.Module = mod.Specifier
	entry.Line = d.Line
	entry.Character = d.Character
	entry.Program = d.Command
	entry.Args = d.Args
	if err := r.recorder.Record(entry); err != nil {
		r.logger.Warn("journal write failed", "err", err)
	}
}

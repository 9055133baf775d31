package runner

import "fmt"

// SpawnError reports a program that could not be launched at all: not
// found, permission denied, or similar.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// NonZeroExitError reports a child process that ran to completion but
// returned a failing status.
type NonZeroExitError struct {
	Program  string
	ExitCode int
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Program, e.ExitCode)
}

// ModuleError pins an engine failure to the module it occurred in and,
// when known, the directive's source position.
type ModuleError struct {
	Specifier string
	Line      int
	Character int
	Err       error
}

func (e *ModuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Specifier, e.Line, e.Character, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Specifier, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}

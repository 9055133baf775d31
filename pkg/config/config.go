// Package config holds the immutable per-invocation configuration for a
// generate run, its defaults, and their registration with Viper.
package config

import (
	"time"

	"github.com/genrun-dev/genrun/pkg/filter"
)

// Config is the full configuration for one genrun invocation. It is built
// once from flags, environment, and an optional config file, and never
// mutated afterwards.
type Config struct {
	// Module filtering
	Include []string
	Ignore  []string

	// Directive filtering
	Run  string
	Skip string

	// Execution policy
	Verbose  bool
	DryRun   bool
	Trace    bool
	FailFast bool
	Allow    []string
	Timeout  time.Duration

	// Journal
	JournalPath string

	// Sandbox
	Sandbox       bool
	SandboxImage  string
	SandboxMemory string
	SandboxCPUs   int
}

// Validate compiles every configured glob and regex so malformed patterns
// fail before any module is scanned.
func (c *Config) Validate() error {
	if _, err := filter.NewPathFilter(c.Include, c.Ignore); err != nil {
		return err
	}
	if _, err := filter.NewDirectiveFilter(c.Run, c.Skip); err != nil {
		return err
	}
	return nil
}

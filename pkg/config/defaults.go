package config

import (
	"github.com/spf13/viper"
)

// Default values for a generate run.
const (
	// DefaultSandboxImage is used when --sandbox is set without an image.
	DefaultSandboxImage = "ubuntu:22.04"

	// DefaultSandboxMemory is the per-container memory limit.
	DefaultSandboxMemory = "512m"

	// DefaultSandboxCPUs is the per-container CPU limit.
	DefaultSandboxCPUs = 2

	// DefaultTimeout bounds each directive. Zero means no limit; generate
	// commands are frequently long-running builds.
	DefaultTimeout = "0"
)

// SetViperDefaults sets all default configuration values in Viper.
func SetViperDefaults() {
	// Filtering defaults
	viper.SetDefault("include", []string{})
	viper.SetDefault("ignore", []string{})
	viper.SetDefault("run", "")
	viper.SetDefault("skip", "")

	// Execution policy defaults
	viper.SetDefault("verbose", false)
	viper.SetDefault("dry-run", false)
	viper.SetDefault("trace", false)
	viper.SetDefault("fail-fast", false)
	viper.SetDefault("allow", []string{})
	viper.SetDefault("timeout", DefaultTimeout)

	// Journal defaults
	viper.SetDefault("journal", "")

	// Sandbox defaults
	viper.SetDefault("sandbox", false)
	viper.SetDefault("sandbox-image", DefaultSandboxImage)
	viper.SetDefault("sandbox-memory", DefaultSandboxMemory)
	viper.SetDefault("sandbox-cpus", DefaultSandboxCPUs)
}

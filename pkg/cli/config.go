package cli

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/genrun-dev/genrun/pkg/config"
)

// initConfig reads the optional config file and environment overrides.
func initConfig() {
	config.SetViperDefaults()

	viper.SetConfigName("genrun.config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("GENRUN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %v\n", err)
		}
		// No config file; flags, environment, and defaults apply.
	}
}

// buildConfig constructs a config.Config from Viper values.
func buildConfig() (*config.Config, error) {
	cfg := &config.Config{
		Include:       viper.GetStringSlice("include"),
		Ignore:        viper.GetStringSlice("ignore"),
		Run:           viper.GetString("run"),
		Skip:          viper.GetString("skip"),
		Verbose:       viper.GetBool("verbose"),
		DryRun:        viper.GetBool("dry-run"),
		Trace:         viper.GetBool("trace"),
		FailFast:      viper.GetBool("fail-fast"),
		Allow:         viper.GetStringSlice("allow"),
		JournalPath:   viper.GetString("journal"),
		Sandbox:       viper.GetBool("sandbox"),
		SandboxImage:  viper.GetString("sandbox-image"),
		SandboxMemory: viper.GetString("sandbox-memory"),
		SandboxCPUs:   viper.GetInt("sandbox-cpus"),
	}

	timeoutStr := viper.GetString("timeout")
	if timeoutStr != "" && timeoutStr != "0" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

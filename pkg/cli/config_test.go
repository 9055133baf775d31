package cli

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genrun-dev/genrun/pkg/config"
)

// TestBuildConfig tests mapping Viper values onto the Config struct
func TestBuildConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetViperDefaults()

	viper.Set("include", []string{"*.ts"})
	viper.Set("ignore", []string{"*.test.*"})
	viper.Set("run", "^build")
	viper.Set("verbose", true)
	viper.Set("dry-run", true)
	viper.Set("allow", []string{"go", "make"})
	viper.Set("timeout", "90s")
	viper.Set("journal", "runs.db")

	cfg, err := buildConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"*.ts"}, cfg.Include)
	assert.Equal(t, []string{"*.test.*"}, cfg.Ignore)
	assert.Equal(t, "^build", cfg.Run)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.Trace)
	assert.Equal(t, []string{"go", "make"}, cfg.Allow)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "runs.db", cfg.JournalPath)
}

// TestBuildConfigDefaults tests the zero-flag configuration
func TestBuildConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetViperDefaults()

	cfg, err := buildConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.Include)
	assert.False(t, cfg.Sandbox)
	assert.Equal(t, config.DefaultSandboxImage, cfg.SandboxImage)
	assert.Zero(t, cfg.Timeout)
}

// TestBuildConfigInvalidTimeout tests the timeout parse error path
func TestBuildConfigInvalidTimeout(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetViperDefaults()

	viper.Set("timeout", "not-a-duration")
	_, err := buildConfig()
	require.Error(t, err)
}

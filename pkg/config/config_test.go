package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genrun-dev/genrun/pkg/filter"
)

// TestValidate tests fail-fast pattern validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "empty config is valid",
			cfg:  Config{},
		},
		{
			name: "well-formed patterns",
			cfg: Config{
				Include: []string{"src/**/*.ts"},
				Ignore:  []string{"*.test.*"},
				Run:     "^build",
				Skip:    "slow",
			},
		},
		{
			name:    "bad glob",
			cfg:     Config{Ignore: []string{"[unclosed"}},
			wantErr: true,
		},
		{
			name:    "bad regex",
			cfg:     Config{Skip: "("},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var invalid *filter.InvalidPatternError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestSetViperDefaults tests registered default values
func TestSetViperDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetViperDefaults()

	assert.False(t, viper.GetBool("verbose"))
	assert.False(t, viper.GetBool("dry-run"))
	assert.False(t, viper.GetBool("fail-fast"))
	assert.Empty(t, viper.GetStringSlice("include"))
	assert.Equal(t, DefaultSandboxImage, viper.GetString("sandbox-image"))
	assert.Equal(t, DefaultSandboxMemory, viper.GetString("sandbox-memory"))
	assert.Equal(t, DefaultSandboxCPUs, viper.GetInt("sandbox-cpus"))
}

package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPath tests specifier resolution
func TestPath(t *testing.T) {
	tests := []struct {
		name      string
		specifier string
		expected  string
		wantErr   bool
	}{
		{
			name:      "plain path",
			specifier: "src/app.ts",
			expected:  "src/app.ts",
		},
		{
			name:      "absolute path",
			specifier: "/tmp/app.ts",
			expected:  "/tmp/app.ts",
		},
		{
			name:      "file URL",
			specifier: "file:///tmp/app.ts",
			expected:  filepath.FromSlash("/tmp/app.ts"),
		},
		{
			name:      "remote URL is rejected",
			specifier: "https://example.com/app.ts",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Module{Specifier: tt.specifier}.Path()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestDir tests parent directory derivation
func TestDir(t *testing.T) {
	dir, err := Module{Specifier: "file:///tmp/src/app.ts"}.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/tmp/src"), dir)
}

// TestLoad tests reading files into an ordered module sequence
func TestLoad(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "first.ts")
	second := filepath.Join(tmp, "second.ts")
	require.NoError(t, os.WriteFile(first, []byte("// first"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("// second"), 0o644))

	modules, err := Load([]string{first, second})
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, first, modules[0].Specifier)
	assert.Equal(t, "// first", modules[0].Source)
	assert.Equal(t, second, modules[1].Specifier)

	_, err = Load([]string{filepath.Join(tmp, "missing.ts")})
	assert.Error(t, err)
}

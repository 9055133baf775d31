package runner

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genrun-dev/genrun/pkg/directive"
	"github.com/genrun-dev/genrun/pkg/module"
)

// TestDeriveEnv tests derived variables and merge-over semantics
func TestDeriveEnv(t *testing.T) {
	mod := module.Module{Specifier: "/tmp/proj/mod.ts"}
	d := directive.Directive{Line: 7, Character: 3}

	base := []string{
		"PATH=/usr/bin",
		"GENRUN_LINE=stale", // inherited value must be overridden
		"HOME=/home/u",
	}
	env, err := deriveEnv(base, mod, d)
	require.NoError(t, err)

	assert.Contains(t, env, "PATH=/usr/bin")
	assert.Contains(t, env, "HOME=/home/u")
	assert.NotContains(t, env, "GENRUN_LINE=stale")

	assert.Contains(t, env, "GENRUN_OS="+runtime.GOOS)
	assert.Contains(t, env, "GENRUN_MODULE=/tmp/proj/mod.ts")
	assert.Contains(t, env, "GENRUN_LINE=7")
	assert.Contains(t, env, "GENRUN_CHARACTER=3")
	assert.Contains(t, env, "GENRUN_DIR="+filepath.FromSlash("/tmp/proj"))
	assert.Contains(t, env, "DOLLAR=$")
}

// TestDeriveEnvBadSpecifier tests that unresolvable specifiers surface as
// errors
func TestDeriveEnvBadSpecifier(t *testing.T) {
	mod := module.Module{Specifier: "https://example.com/mod.ts"}
	_, err := deriveEnv(nil, mod, directive.Directive{Line: 1, Character: 1})
	require.Error(t, err)
}

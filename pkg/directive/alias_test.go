package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryExpand tests alias resolution and argument ordering
func TestRegistryExpand(t *testing.T) {
	ds, err := Parse("//genrun:generate cmd=echo hi\n//genrun:generate cmd there\n")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	reg := NewRegistry(ds)
	reg.Define(ds[0].AliasName, ds[0].Command, ds[0].Args)

	expanded, err := reg.Expand(ds[1])
	require.NoError(t, err)
	assert.Equal(t, "echo", expanded.Command)
	// Alias args come first, the directive's own args are appended.
	assert.Equal(t, []string{"hi", "there"}, expanded.Args)
}

// TestRegistryExpandPlainCommand tests that non-alias commands pass through
func TestRegistryExpandPlainCommand(t *testing.T) {
	ds, err := Parse("//genrun:generate make -j4\n")
	require.NoError(t, err)

	reg := NewRegistry(ds)
	expanded, err := reg.Expand(ds[0])
	require.NoError(t, err)
	assert.Equal(t, ds[0], expanded)
}

// TestRegistryForwardReference tests that using an alias before its
// definition is an error
func TestRegistryForwardReference(t *testing.T) {
	ds, err := Parse("//genrun:generate build extra\n//genrun:generate build=make -j4\n")
	require.NoError(t, err)
	require.Len(t, ds, 2)

	reg := NewRegistry(ds)
	_, err = reg.Expand(ds[0])
	require.Error(t, err)

	var unknown *UnknownAliasError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "build", unknown.Name)
	assert.Equal(t, 1, unknown.Line)
}

// TestRegistryOverwrite tests that later definitions replace earlier ones
func TestRegistryOverwrite(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Define("build", "make", []string{"-j2"})
	reg.Define("build", "ninja", nil)

	cmd, args, ok := reg.Resolve("build")
	require.True(t, ok)
	assert.Equal(t, "ninja", cmd)
	assert.Empty(t, args)
}

// TestRegistryNoChaining tests that an alias's command is never itself
// resolved as another alias
func TestRegistryNoChaining(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Define("a", "b", nil)
	reg.Define("b", "echo", []string{"chained"})

	expanded, err := reg.Expand(Directive{Command: "a", Args: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, "b", expanded.Command)
	assert.Equal(t, []string{"x"}, expanded.Args)
}

// TestRegistryDefensiveCopies tests that registry entries do not share
// backing arrays with their callers
func TestRegistryDefensiveCopies(t *testing.T) {
	args := []string{"-j4"}
	reg := NewRegistry(nil)
	reg.Define("build", "make", args)
	args[0] = "mutated"

	_, got, ok := reg.Resolve("build")
	require.True(t, ok)
	assert.Equal(t, []string{"-j4"}, got)
}

package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genrun-dev/genrun/pkg/runner"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "genrun.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

// TestRecordAndRecent tests the write/read round trip
func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	require.NoError(t, j.Record(runner.Record{
		Time:      time.Now(),
		Module:    "a.ts",
		Line:      3,
		Character: 1,
		Program:   "make",
		Args:      []string{"-j4", "extra"},
		ExitCode:  0,
		Duration:  1500 * time.Millisecond,
	}))
	require.NoError(t, j.Record(runner.Record{
		Time:    time.Now(),
		Module:  "b.ts",
		Line:    1,
		Program: "echo",
		DryRun:  true,
	}))

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, "b.ts", entries[0].Module)
	assert.True(t, entries[0].DryRun)
	assert.Equal(t, "echo", entries[0].Command)

	assert.Equal(t, "a.ts", entries[1].Module)
	assert.Equal(t, "make -j4 extra", entries[1].Command)
	assert.Equal(t, int64(1500), entries[1].DurationMS)
	assert.Equal(t, 3, entries[1].Line)
}

// TestRecentLimit tests the limit clause
func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(runner.Record{Time: time.Now(), Module: "m.ts", Program: "echo"}))
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

// TestRecentEmpty tests reading an empty journal
func TestRecentEmpty(t *testing.T) {
	j := openTestJournal(t)
	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

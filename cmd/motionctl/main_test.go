package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motionctl/pkg/errors"
)

func execute(args ...string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestNoModeIsUsageError(t *testing.T) {
	err := execute()
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}

func TestBothModesIsUsageError(t *testing.T) {
	err := execute("-p", "4444", "job.gcode")
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}

func TestRepeatWithPortIsUsageError(t *testing.T) {
	err := execute("-R", "-p", "4444")
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}

func TestBadSpeedFactorIsUsageError(t *testing.T) {
	for _, factor := range []string{"0", "-1"} {
		err := execute("-f", factor, "job.gcode")
		require.Error(t, err, "factor %s", factor)
		assert.True(t, errors.IsUsage(err), "factor %s", factor)
	}
}

func TestMalformedVectorIsUsageError(t *testing.T) {
	err := execute("-m", "100,oops", "job.gcode")
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	err := execute("--no-such-flag")
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
}

func TestFilePlaybackThroughSimEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G28\nG1 X10 F3000\n"), 0o644))

	assert.NoError(t, execute("-n", "-f", "2.5", path))
}

func TestMissingFileIsNotUsageError(t *testing.T) {
	err := execute(filepath.Join(t.TempDir(), "missing.gcode"))
	require.Error(t, err)
	assert.False(t, errors.IsUsage(err))
	assert.Equal(t, errors.ErrResource, errors.CodeOf(err))
}

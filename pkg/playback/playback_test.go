package playback

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motionctl/pkg/config"
	"motionctl/pkg/errors"
)

// countingEngine consumes streams and fails once a preset number of
// passes is reached (failAfter 0 means never fail).
type countingEngine struct {
	calls     int
	failAfter int
	lastInput string
}

func (e *countingEngine) Init(*config.MachineControl) error { return nil }

func (e *countingEngine) ProcessStream(in io.Reader, out io.Writer) error {
	e.calls++
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	e.lastInput = string(data)
	if e.failAfter > 0 && e.calls >= e.failAfter {
		return assert.AnError
	}
	return nil
}

func (e *countingEngine) Shutdown() {}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.gcode")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunOnce(t *testing.T) {
	eng := &countingEngine{}
	r := New(eng, nil)
	r.ErrOut = io.Discard

	path := writeFile(t, "G28\nG1 X10\n")
	require.NoError(t, r.Run(path, false))

	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, "G28\nG1 X10\n", eng.lastInput)
}

func TestRunOnceEngineFailure(t *testing.T) {
	// Without repeat the engine is called exactly once, whatever the
	// result.
	eng := &countingEngine{failAfter: 1}
	r := New(eng, nil)
	r.ErrOut = io.Discard

	err := r.Run(writeFile(t, "G28\n"), false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrEngine, errors.CodeOf(err))
	assert.Equal(t, 1, eng.calls)
}

func TestRepeatReopensUntilFailure(t *testing.T) {
	// Repeat mode reopens the file from the beginning after every
	// successful pass. The run only ends when a pass fails.
	eng := &countingEngine{failAfter: 5}
	r := New(eng, nil)
	r.ErrOut = io.Discard

	err := r.Run(writeFile(t, "G1 X1\n"), true)
	require.Error(t, err)
	assert.Equal(t, 5, eng.calls)
	// Every pass saw the full file, not a resumed stream.
	assert.Equal(t, "G1 X1\n", eng.lastInput)
}

func TestMissingFileIsResourceError(t *testing.T) {
	eng := &countingEngine{}
	r := New(eng, nil)

	err := r.Run(filepath.Join(t.TempDir(), "missing.gcode"), false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrResource, errors.CodeOf(err))
	assert.Zero(t, eng.calls)
}

package control

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

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"file mode", Options{Filename: "job.gcode"}, false},
		{"network mode", Options{Port: 4444}, false},
		{"file with repeat", Options{Filename: "job.gcode", Repeat: true}, false},
		{"neither", Options{}, true},
		{"both", Options{Filename: "job.gcode", Port: 4444}, true},
		{"repeat with port", Options{Port: 4444, Repeat: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsUsage(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// lifecycleEngine records the order of gateway calls.
type lifecycleEngine struct {
	calls   []string
	initErr error
	procErr error
	cfg     *config.MachineControl
}

func (e *lifecycleEngine) Init(cfg *config.MachineControl) error {
	e.calls = append(e.calls, "init")
	e.cfg = cfg
	return e.initErr
}

func (e *lifecycleEngine) ProcessStream(in io.Reader, out io.Writer) error {
	e.calls = append(e.calls, "process")
	_, _ = io.Copy(io.Discard, in)
	return e.procErr
}

func (e *lifecycleEngine) Shutdown() {
	e.calls = append(e.calls, "shutdown")
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.gcode")
	require.NoError(t, os.WriteFile(path, []byte("G28\n"), 0o644))
	return path
}

func TestRunFileMode(t *testing.T) {
	eng := &lifecycleEngine{}
	cfg := config.NewBuilder().Build()

	d := New(eng, nil)
	require.NoError(t, d.Run(cfg, Options{Filename: tempFile(t)}))

	assert.Equal(t, []string{"init", "process", "shutdown"}, eng.calls)
	// The engine sees the very record that was built, not a copy.
	assert.Same(t, cfg, eng.cfg)
}

func TestRunShutdownAfterEngineFailure(t *testing.T) {
	eng := &lifecycleEngine{procErr: assert.AnError}

	d := New(eng, nil)
	err := d.Run(config.NewBuilder().Build(), Options{Filename: tempFile(t)})
	require.Error(t, err)
	assert.Equal(t, errors.ErrEngine, errors.CodeOf(err))
	assert.Equal(t, []string{"init", "process", "shutdown"}, eng.calls)
}

func TestRunInitFailure(t *testing.T) {
	eng := &lifecycleEngine{initErr: assert.AnError}

	d := New(eng, nil)
	err := d.Run(config.NewBuilder().Build(), Options{Filename: tempFile(t)})
	require.Error(t, err)
	// No stream processed, no shutdown of an engine that never started.
	assert.Equal(t, []string{"init"}, eng.calls)
}

func TestRunInvalidOptionsTouchNothing(t *testing.T) {
	eng := &lifecycleEngine{}

	d := New(eng, nil)
	err := d.Run(config.NewBuilder().Build(), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsUsage(err))
	assert.Empty(t, eng.calls)
}

package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motionctl/pkg/config"
)

func TestSimAcknowledgesCommands(t *testing.T) {
	cfg := config.NewBuilder().Build()
	eng := NewSim(nil)
	require.NoError(t, eng.Init(cfg))
	defer eng.Shutdown()

	in := strings.NewReader("G1 X10 Y5\nG1 X0 ; back home\n\n; comment only\nM84\n")
	var out bytes.Buffer
	require.NoError(t, eng.ProcessStream(in, &out))

	// One ok per command line; blank and comment-only lines are silent.
	assert.Equal(t, "ok\nok\nok\n", out.String())
}

func TestSimEmptyStream(t *testing.T) {
	eng := NewSim(nil)
	require.NoError(t, eng.Init(config.NewBuilder().Build()))

	var out bytes.Buffer
	require.NoError(t, eng.ProcessStream(strings.NewReader(""), &out))
	assert.Zero(t, out.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestSimWriteFailure(t *testing.T) {
	eng := NewSim(nil)
	require.NoError(t, eng.Init(config.NewBuilder().Build()))

	err := eng.ProcessStream(strings.NewReader("G28\n"), failingWriter{})
	assert.ErrorIs(t, err, assert.AnError)
}

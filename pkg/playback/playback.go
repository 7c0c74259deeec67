// Package playback replays a command file through the motion engine,
// optionally forever.
package playback

import (
	"io"
	"os"

	"go.uber.org/zap"

	"motionctl/pkg/engine"
	"motionctl/pkg/errors"
)

// Runner streams one command file into the engine. Each pass is a fresh
// open from offset zero; there is no resume.
type Runner struct {
	Engine engine.Gateway
	Logger *zap.Logger

	// ErrOut is the fixed error-reporting stream handed to the engine
	// alongside the file. Defaults to stderr.
	ErrOut io.Writer
}

// New creates a playback runner for the given engine.
func New(eng engine.Gateway, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Engine: eng,
		Logger: logger.Named("playback"),
		ErrOut: os.Stderr,
	}
}

// Run feeds the named file to the engine. With repeat set and a
// successful pass it reopens the file and plays it again, indefinitely;
// only external process termination stops an infinite repeat. The first
// engine failure ends the run immediately, without retrying.
func (r *Runner) Run(filename string, repeat bool) error {
	for {
		if err := r.playOnce(filename); err != nil {
			return err
		}
		if !repeat {
			return nil
		}
		r.Logger.Debug("repeating file", zap.String("file", filename))
	}
}

func (r *Runner) playOnce(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, errors.ErrResource, "opening command file")
	}
	defer f.Close()

	if err := r.Engine.ProcessStream(f, r.ErrOut); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "processing command file")
	}
	return nil
}

// Package control validates the execution-mode selection and routes the
// run to file playback or the network service.
package control

import (
	"go.uber.org/zap"

	"motionctl/pkg/config"
	"motionctl/pkg/engine"
	"motionctl/pkg/errors"
	"motionctl/pkg/playback"
	"motionctl/pkg/server"
)

// Options selects the execution mode. Exactly one of Filename and Port
// must be set: file playback and the network service are mutually
// exclusive.
type Options struct {
	// Filename is the command file to play back; empty means no file
	// mode.
	Filename string

	// Port selects network mode when > 0.
	Port int

	// BindAddr is the optional listen address for network mode.
	BindAddr string

	// Repeat replays the file forever. Only valid with Filename.
	Repeat bool
}

// Validate enforces the exclusive-mode rules. Violations are usage
// errors; nothing may have been executed when they are reported.
func (o *Options) Validate() error {
	hasFile := o.Filename != ""
	hasPort := o.Port > 0
	if hasFile == hasPort {
		return errors.Usagef("choose one: <command-filename> or --port <port>")
	}
	if o.Repeat && !hasFile {
		return errors.Usagef("--repeat only makes sense with a filename")
	}
	return nil
}

// Dispatcher drives one process run: engine init, one execution mode,
// engine shutdown.
type Dispatcher struct {
	Engine engine.Gateway
	Logger *zap.Logger
}

// New creates a dispatcher around the given engine.
func New(eng engine.Gateway, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{Engine: eng, Logger: logger}
}

// Run validates opts, initializes the engine with cfg and executes the
// selected mode. The configuration record is passed by pointer and never
// copied per unit of work; the engine owns it until shutdown.
func (d *Dispatcher) Run(cfg *config.MachineControl, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := d.Engine.Init(cfg); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "initializing engine")
	}
	defer d.Engine.Shutdown()

	if opts.Filename != "" {
		return playback.New(d.Engine, d.Logger).Run(opts.Filename, opts.Repeat)
	}

	srv := server.New(d.Engine, d.Logger)
	srv.BindAddr = opts.BindAddr
	srv.Port = opts.Port
	return srv.Run()
}

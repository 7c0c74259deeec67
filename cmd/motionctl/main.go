// motionctl is the front end of the motion controller. It builds the
// per-axis machine configuration from defaults, an optional config file
// and flags, then either plays a command file back through the motion
// engine or serves one network client at a time.
//
// Examples:
//
//	# Play a file once with a custom feedrate vector
//	motionctl -m 300,300,100 job.gcode
//
//	# Play a file forever (stress test)
//	motionctl -R job.gcode
//
//	# Serve clients on port 4444, bound to one interface
//	motionctl -p 4444 -b 192.168.7.2
//
//	# Forward to an engine attached on a serial line
//	motionctl --device /dev/ttyACM0 -p 4444
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"motionctl/pkg/config"
	"motionctl/pkg/control"
	"motionctl/pkg/engine"
	"motionctl/pkg/errors"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if errors.IsUsage(err) {
			fmt.Fprintf(os.Stderr, "%v\n\n%s", err, cmd.UsageString())
		} else {
			fmt.Fprintf(os.Stderr, "motionctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile  string
		stepsMM     string
		maxFeedrate string
		accel       string
		moveRange   string
		homePos     string
		axisMapping string
		speedFactor float64
		dryRun      bool
		debugPrint  bool
		synchronous bool
		repeat      bool
		port        int
		bindAddr    string
		device      string
		baud        int
	)

	cmd := &cobra.Command{
		Use:   "motionctl [options] [<command-filename>]",
		Short: "Motion controller front end: stream command files or network sessions into the motion engine",
		Long: `motionctl builds the per-axis machine configuration and streams commands
into the motion engine, either from a file (once or repeated forever) or
from a TCP service that serves one client at a time.

All comma separated axis values are in the sequence X,Y,Z,E,A,B,C.
You can either give a filename or listen with --port, not both.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Usagef("at most one command filename, got %d arguments", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(debugPrint)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			b := config.NewBuilder()
			if configFile != "" {
				if err := b.ApplyFile(configFile); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			if flags.Changed("steps-mm") {
				if err := b.SetStepsPerMM(stepsMM); err != nil {
					return err
				}
			}
			if flags.Changed("max-feedrate") {
				if err := b.SetMaxFeedrate(maxFeedrate); err != nil {
					return err
				}
			}
			if flags.Changed("accel") {
				if err := b.SetAcceleration(accel); err != nil {
					return err
				}
			}
			if flags.Changed("range") {
				if err := b.SetMoveRange(moveRange); err != nil {
					return err
				}
			}
			if flags.Changed("home-pos") {
				if err := b.SetHomeSwitch(homePos); err != nil {
					return err
				}
			}
			if flags.Changed("axis-mapping") {
				if err := b.SetAxisMapping(axisMapping); err != nil {
					return err
				}
			}
			if flags.Changed("speed-factor") {
				if err := b.SetSpeedFactor(speedFactor); err != nil {
					return err
				}
			}
			if flags.Changed("dry-run") {
				b.SetDryRun(dryRun)
			}
			if flags.Changed("debug-print") {
				b.SetDebugPrint(debugPrint)
			}
			if flags.Changed("synchronous") {
				b.SetSynchronous(synchronous)
			}
			cfg := b.Build()

			var eng engine.Gateway
			if device != "" {
				eng = engine.NewSerial(device, baud, logger)
			} else {
				eng = engine.NewSim(logger)
			}

			opts := control.Options{
				Port:     port,
				BindAddr: bindAddr,
				Repeat:   repeat,
			}
			if len(args) == 1 {
				opts.Filename = args[0]
			}
			return control.New(eng, logger).Run(cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Optional YAML seed file, applied before flag overrides")
	f.StringVar(&stepsMM, "steps-mm", "", "Steps/mm per axis, comma separated (default 160,160,160,40,1,0,0)")
	f.StringVarP(&maxFeedrate, "max-feedrate", "m", "", "Max feedrate per axis in mm/s, comma separated (default 200,200,90,10,1,0,0)")
	f.StringVarP(&accel, "accel", "a", "", "Acceleration per axis in mm/s^2, comma separated; <=0 means unbounded (default 4000,4000,1000,10000,1,0,0)")
	f.StringVarP(&moveRange, "range", "r", "", "Travel range per axis in mm, comma separated; negative means unclipped (default 100,100,100,-1,-1,-1,-1)")
	f.StringVar(&homePos, "home-pos", "", "Home switch per axis: 0=none, 1=origin, 2=end-of-range, comma separated")
	f.StringVar(&axisMapping, "axis-mapping", "", "Axis letter mapped to motor connector position; use '_' for an empty slot (default XYZEA)")
	f.Float64VarP(&speedFactor, "speed-factor", "f", 1, "Speed scaling factor, must be > 0")
	f.BoolVarP(&dryRun, "dry-run", "n", false, "Dry run; don't send to motors")
	f.BoolVarP(&debugPrint, "debug-print", "P", false, "Verbose; print motor commands")
	f.BoolVarP(&synchronous, "synchronous", "S", false, "Synchronous; don't queue")
	f.BoolVarP(&repeat, "repeat", "R", false, "Repeat file playback forever")
	f.IntVarP(&port, "port", "p", 0, "Listen on this TCP port (network mode)")
	f.StringVarP(&bindAddr, "bind-addr", "b", "", "Bind to this IP (default all interfaces)")
	f.StringVar(&device, "device", "", "Serial device of an attached motion engine (default: built-in simulation)")
	f.IntVar(&baud, "baud", engine.DefaultBaud, "Baud rate for --device")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, "invalid flags")
	})
	return cmd
}

// newLogger builds the process logger; --debug-print also lowers the log
// level to debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}

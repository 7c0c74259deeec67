package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"motionctl/pkg/config"
)

// Sim is a dry-run engine. It consumes the command stream line by line,
// acknowledges every command on the output stream and never touches
// hardware. It is the engine used when no device is attached, and it is
// what makes the -n/-P flags observable.
type Sim struct {
	Logger *zap.Logger

	cfg *config.MachineControl
}

// NewSim creates a simulation engine logging through logger.
func NewSim(logger *zap.Logger) *Sim {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sim{Logger: logger.Named("engine")}
}

// Init stores the configuration and logs the machine summary.
func (s *Sim) Init(cfg *config.MachineControl) error {
	s.cfg = cfg
	s.Logger.Info("simulation engine initialized",
		zap.String("axis_mapping", cfg.AxisMapping),
		zap.String("channel_layout", cfg.ChannelLayout),
		zap.Float64("speed_factor", cfg.SpeedFactor),
		zap.Bool("dry_run", cfg.DryRun),
		zap.Bool("synchronous", cfg.Synchronous))
	return nil
}

// ProcessStream reads command lines from in and acknowledges each with
// "ok" on out. Comment-only and empty lines are consumed silently.
func (s *Sim) ProcessStream(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.cfg != nil && s.cfg.DebugPrint {
			s.Logger.Info("command", zap.String("line", line))
		}
		if _, err := fmt.Fprint(out, "ok\n"); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	return scanner.Err()
}

// Shutdown logs the teardown; the simulation holds no resources.
func (s *Sim) Shutdown() {
	s.Logger.Info("simulation engine shut down")
	s.cfg = nil
}

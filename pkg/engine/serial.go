package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"motionctl/pkg/config"
)

// DefaultBaud is the baud rate used when none is given. USB CDC devices
// ignore it anyway.
const DefaultBaud = 250000

// readTimeout bounds how long a response read may block, so the
// response pump can notice the end of a session.
const readTimeout = 100 * time.Millisecond

// PortOpener opens the serial device. Injectable for tests.
type PortOpener func(device string, baud int) (io.ReadWriteCloser, error)

func openSerialPort(device string, baud int) (io.ReadWriteCloser, error) {
	return serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
}

// Serial is a gateway to a motion engine attached over a serial line.
// The command stream is forwarded to the device verbatim and whatever
// the device answers is forwarded back, one session at a time.
type Serial struct {
	Device   string
	Baud     int
	Logger   *zap.Logger
	OpenPort PortOpener

	port io.ReadWriteCloser
}

// NewSerial creates a serial engine gateway for the given device.
func NewSerial(device string, baud int, logger *zap.Logger) *Serial {
	if baud <= 0 {
		baud = DefaultBaud
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Serial{
		Device:   device,
		Baud:     baud,
		Logger:   logger.Named("engine"),
		OpenPort: openSerialPort,
	}
}

// Init opens the serial device.
func (s *Serial) Init(cfg *config.MachineControl) error {
	port, err := s.OpenPort(s.Device, s.Baud)
	if err != nil {
		return fmt.Errorf("opening engine device %s: %w", s.Device, err)
	}
	s.port = port
	s.Logger.Info("serial engine initialized",
		zap.String("device", s.Device),
		zap.Int("baud", s.Baud),
		zap.String("axis_mapping", cfg.AxisMapping))
	return nil
}

// ProcessStream pumps commands from in to the device and responses from
// the device to out until in is exhausted or either direction fails.
func (s *Serial) ProcessStream(in io.Reader, out io.Writer) error {
	if s.port == nil {
		return errors.New("serial engine not initialized")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		defer cancel()
		if _, err := io.Copy(s.port, in); err != nil {
			return fmt.Errorf("forwarding commands: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.pumpResponses(ctx, out)
	})
	return g.Wait()
}

// pumpResponses copies device output to out until ctx is done. Reads on
// the port return periodically (read timeout), which is when the end of
// the session is noticed.
func (s *Serial) pumpResponses(ctx context.Context, out io.Writer) error {
	buf := make([]byte, 4096)
	for {
		n, err := s.port.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return fmt.Errorf("forwarding responses: %w", werr)
			}
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading engine device: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

// Shutdown closes the serial device.
func (s *Serial) Shutdown() {
	if s.port != nil {
		_ = s.port.Close()
		s.port = nil
	}
	s.Logger.Info("serial engine shut down")
}

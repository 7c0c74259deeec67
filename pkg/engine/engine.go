// Package engine defines the gateway to the motion-control engine and
// the concrete engines shipped with the front end. The engine is the
// external collaborator that interprets the command stream and drives
// the motors; this layer only reaches it through three operations.
package engine

import (
	"io"

	"motionctl/pkg/config"
)

// Gateway is the narrow boundary to the motion engine. Implementations
// own whatever state they need between Init and Shutdown; the
// configuration record passed to Init must be treated as read-only.
type Gateway interface {
	// Init prepares the engine with the machine configuration. It is
	// called exactly once, before any stream is processed.
	Init(cfg *config.MachineControl) error

	// ProcessStream interprets one logical command stream. Commands
	// arrive on in, responses go to out (for a network session both are
	// the same connection). It blocks until the stream is exhausted or
	// the engine fails; a nil return means the stream completed.
	ProcessStream(in io.Reader, out io.Writer) error

	// Shutdown releases the engine. Called once, at process teardown.
	Shutdown()
}

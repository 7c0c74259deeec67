// Serial TCP front end for the motion engine.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package server runs the network service mode: one TCP listener, one
// client at a time. A session is one connection handed to the engine as
// both command input and response output; the next client is only
// accepted once the previous session has completed. The machine can only
// execute one stream of motion commands at a time, so this serialization
// is deliberate.
package server

import (
	"context"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"motionctl/pkg/engine"
	"motionctl/pkg/errors"
)

// MaxPort is the highest valid TCP port.
const MaxPort = 65535

// Runner owns the listening socket and the serial accept loop.
type Runner struct {
	// BindAddr is the textual listen address; empty means all
	// interfaces.
	BindAddr string

	// Port is the TCP port to listen on (1..MaxPort).
	Port int

	Engine engine.Gateway
	Logger *zap.Logger
}

// New creates a network service runner for the given engine.
func New(eng engine.Gateway, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Engine: eng,
		Logger: logger.Named("server"),
	}
}

// Run binds the listener and serves clients until the engine fails a
// session. Bind parameter problems are usage errors; socket-level
// failures are fatal resource errors.
func (r *Runner) Run() error {
	ln, err := r.listen()
	if err != nil {
		return err
	}
	return r.Serve(ln)
}

// listen validates the bind parameters and creates the listening socket
// with SO_REUSEADDR set, so a restarted service can rebind immediately.
func (r *Runner) listen() (net.Listener, error) {
	if r.Port <= 0 || r.Port > MaxPort {
		return nil, errors.Usagef("invalid port %d", r.Port)
	}
	if r.BindAddr != "" && net.ParseIP(r.BindAddr) == nil {
		return nil, errors.Usagef("invalid bind IP address %q", r.BindAddr)
	}
	lc := net.ListenConfig{Control: reuseAddr}
	addr := net.JoinHostPort(r.BindAddr, strconv.Itoa(r.Port))
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrResource, "trouble binding")
	}
	return ln, nil
}

// Serve accepts and serves one connection at a time on ln until the
// engine reports a failed session, which closes the listener and becomes
// the overall outcome. An accept failure is fatal; there is no retry.
func (r *Runner) Serve(ln net.Listener) error {
	defer ln.Close()

	// Peers closing connections mid-write must not kill the process.
	signal.Ignore(syscall.SIGPIPE)

	r.Logger.Info("listening", zap.String("addr", ln.Addr().String()))

	for {
		conn, err := ln.Accept()
		if err != nil {
			return errors.Wrap(err, errors.ErrResource, "accept")
		}
		err = r.serveConn(conn)
		if err != nil {
			r.Logger.Error("session failed, shutting down service", zap.Error(err))
			return errors.Wrap(err, errors.ErrEngine, "processing session")
		}
	}
}

// serveConn runs one session: the connection is both the command input
// and the response output of the engine.
func (r *Runner) serveConn(conn net.Conn) error {
	defer conn.Close()

	peer := conn.RemoteAddr().String()
	r.Logger.Info("accepting new connection", zap.String("peer", peer))
	err := r.Engine.ProcessStream(conn, conn)
	r.Logger.Info("connection closed", zap.String("peer", peer))
	return err
}

// reuseAddr sets SO_REUSEADDR on the listening socket before bind.
func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	return sockErr
}

// Unified error handling for the motion controller front end.
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	"errors"
	"fmt"
)

// Code represents the category of error.
type Code string

const (
	// ErrUsage marks contradictory or malformed command line input:
	// bad numeric lists, invalid port or bind address, conflicting
	// execution modes. The CLI prints the usage text for these.
	ErrUsage Code = "USAGE"

	// ErrResource marks OS-level failures: file open, socket create,
	// bind, accept. Fatal, reported with the underlying error text.
	ErrResource Code = "RESOURCE"

	// ErrEngine marks a failed stream-processing call in the motion
	// engine. Never retried.
	ErrEngine Code = "ENGINE"
)

// MachineError is the error type carried across the front end.
type MachineError struct {
	// Code is the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Err wraps the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *MachineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MachineError) Unwrap() error {
	return e.Err
}

// New creates a new MachineError.
func New(code Code, message string) *MachineError {
	return &MachineError{Code: code, Message: message}
}

// Newf creates a new MachineError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *MachineError {
	return &MachineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a category and message.
func Wrap(err error, code Code, message string) *MachineError {
	return &MachineError{Code: code, Message: message, Err: err}
}

// Usagef creates a usage error with a formatted message.
func Usagef(format string, args ...interface{}) *MachineError {
	return Newf(ErrUsage, format, args...)
}

// CodeOf returns the category of err, or an empty Code when err is not
// a MachineError.
func CodeOf(err error) Code {
	var me *MachineError
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool {
	return CodeOf(err) == ErrUsage
}

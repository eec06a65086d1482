// internal/session/errors.go
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolViolation covers undecodable lines and messages that cannot be applied.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrTransport covers read and write failures, including end of stream.
	ErrTransport = errors.New("transport failure")
	// ErrZombieTimeout is raised when auto-close is enabled and no heartbeat arrived in time.
	ErrZombieTimeout = errors.New("connection timed out")
	// ErrShellAbort is raised when a sink callback returns an error.
	ErrShellAbort = errors.New("aborted by shell")
	// ErrClosed is returned by commands once the session is faulted or closed.
	ErrClosed = errors.New("session closed")
)

// FatalError is the single error reported through OnFatalError. It matches its
// Kind and its cause with errors.Is.
type FatalError struct {
	Kind error
	Err  error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *FatalError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

package telnet

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by operations invoked before Open succeeded.
var ErrNotConnected = errors.New("telnet: not connected")

// ErrClosed is returned by operations invoked after Close.
var ErrClosed = errors.New("telnet: connection closed")

// ConnectionError reports a connection-level failure: refusal, resolution
// failure, or peer reset during a write. Read-side failures never surface as
// errors; they end the stream and show up as empty or partial results.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("telnet: %s: %s", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

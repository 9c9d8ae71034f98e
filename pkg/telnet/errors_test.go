package telnet

import (
	"errors"
	"strings"
	"testing"
)

func TestConnectionError(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := &ConnectionError{Op: "open 127.0.0.1:23", Err: inner}

	if !strings.Contains(err.Error(), "open 127.0.0.1:23") {
		t.Errorf("Error() = %q, missing operation", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() did not match the wrapped cause")
	}
}

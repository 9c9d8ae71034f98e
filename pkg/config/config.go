// Package config holds the shared client configuration and injectable
// dependencies used across telwrap.
package config

import (
	"fmt"
	"time"

	"telwrap/pkg/log"
)

// Protocol identifies the transport used to reach the remote host.
type Protocol int

// Supported transport protocols.
const (
	ProtoTCP Protocol = iota + 1
	ProtoWS
	ProtoWSS
	ProtoUDP
)

// String returns the URL scheme for the protocol, or "" if unknown.
func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoWS:
		return "ws"
	case ProtoWSS:
		return "wss"
	case ProtoUDP:
		return "udp"
	default:
		return ""
	}
}

// DefaultPort is the well-known Telnet port.
const DefaultPort = 23

// Shared is the configuration for one client instance.
type Shared struct {
	Host     string   // remote host; when set, New opens the connection immediately
	Port     int      // remote port, defaults to DefaultPort when 0
	Protocol Protocol // transport protocol, defaults to ProtoTCP when unset

	Timeout       time.Duration // connect timeout, 0 means OS default
	ForceBlocking bool          // force the blocking backend
	LogFile       string        // session transcript file, empty to disable
	Verbose       bool

	Logger *log.Logger
	Deps   *Dependencies
}

// Validate checks the configuration and returns all problems found.
func (c *Shared) Validate() []error {
	var errors []error

	if c.Port != 0 {
		if err := validatePort(c.Port); err != nil {
			errors = append(errors, fmt.Errorf("'--port': %s", err))
		}
	}

	if c.Protocol != 0 && c.Protocol.String() == "" {
		errors = append(errors, fmt.Errorf("unknown protocol %d", c.Protocol))
	}

	if c.Timeout < 0 {
		errors = append(errors, fmt.Errorf("'--timeout' must not be negative"))
	}

	return errors
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%d not in [1, 65535]", port)
	}

	return nil
}

// GetPort returns the configured port, falling back to DefaultPort.
func (c *Shared) GetPort() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}

// GetProtocol returns the configured protocol, falling back to ProtoTCP.
func (c *Shared) GetProtocol() Protocol {
	if c.Protocol == 0 {
		return ProtoTCP
	}
	return c.Protocol
}

// GetLogger returns the configured logger, or a non-verbose default.
func (c *Shared) GetLogger() *log.Logger {
	if c.Logger == nil {
		c.Logger = log.New(c.Verbose)
	}
	return c.Logger
}

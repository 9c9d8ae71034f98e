// Package format provides small formatting helpers for network addresses.
package format

import (
	"fmt"
	"strings"
)

// Addr joins host and port into a dialable address, bracketing IPv6 hosts.
func Addr(host string, port int) string {
	if strings.ContainsAny(host, ":") { // IPv6
		return fmt.Sprintf("[%s]:%d", host, port)
	}
	return fmt.Sprintf("%s:%d", host, port)
}

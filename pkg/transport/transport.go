// Package transport provides the outbound transport abstraction for telwrap.
// Each transport (tcp, ws, udp) implements the Dialer interface and returns a
// plain net.Conn; everything above this layer is transport-agnostic.
//
// Transport-specific notes:
//   - TCP: connect timeout and keep-alive, dial function injectable for tests
//   - WebSocket: ws (plain) and wss (TLS) URL schemes; frames use the TEXT
//     message type, the byte/text conversion stays inside the adapter
//   - UDP: KCP session on top of a UDP packet conn for stream reliability
package transport

import (
	"context"
	"net"
)

// Dialer establishes an outbound connection to a fixed remote address.
type Dialer interface {
	// Dial connects to the remote side. The context can cancel the attempt.
	Dial(ctx context.Context) (net.Conn, error)
}

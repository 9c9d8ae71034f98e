// Package udp provides the UDP transport for telwrap using KCP for
// reliable, ordered stream delivery over packet connections.
package udp

import (
	"context"
	"fmt"
	"net"

	kcp "github.com/xtaci/kcp-go/v5"

	"telwrap/pkg/config"
)

// Dialer implements the transport.Dialer interface for UDP connections.
type Dialer struct {
	remoteAddr   *net.UDPAddr
	packetConnFn config.PacketListenerFunc
}

// NewDialer creates a UDP dialer for the specified address. The deps
// parameter is optional and can be nil to use net.ListenPacket.
func NewDialer(addr string, deps *config.Dependencies) (*Dialer, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveUDPAddr(udp, %s): %w", addr, err)
	}

	return &Dialer{
		remoteAddr:   udpAddr,
		packetConnFn: config.GetPacketListenerFunc(deps),
	}, nil
}

// Dial establishes a KCP session over UDP to the configured address.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	// ":0" lets the OS choose an ephemeral local port
	conn, err := d.packetConnFn("udp", ":0")
	if err != nil {
		return nil, fmt.Errorf("net.ListenPacket(udp, :0): %w", err)
	}

	kcpConn, err := kcp.NewConn(d.remoteAddr.String(), nil, 0, 0, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kcp.NewConn(%s): %w", d.remoteAddr.String(), err)
	}

	// Low-latency profile: fast resend, no congestion window. An
	// interactive telnet session is latency-bound, not throughput-bound.
	kcpConn.SetNoDelay(1, 10, 2, 1)
	kcpConn.SetStreamMode(true)
	kcpConn.SetWindowSize(1024, 1024)

	return kcpConn, nil
}

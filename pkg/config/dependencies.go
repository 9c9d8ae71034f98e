package config

import "net"

// Dependencies contains injectable network primitives for testing.
// All fields are optional and default to the real stdlib implementations.
type Dependencies struct {
	TCPDialer      TCPDialerFunc
	PacketListener PacketListenerFunc
}

// TCPDialerFunc is a function that dials a TCP connection.
// It returns a net.Conn to allow for mock implementations.
type TCPDialerFunc func(network string, laddr, raddr *net.TCPAddr) (net.Conn, error)

// PacketListenerFunc is a function that creates a packet listener.
// It returns a net.PacketConn to allow for mock implementations.
type PacketListenerFunc func(network, address string) (net.PacketConn, error)

// GetTCPDialerFunc returns the TCP dialer function from dependencies, or a
// default implementation based on net.DialTCP.
func GetTCPDialerFunc(deps *Dependencies) TCPDialerFunc {
	if deps != nil && deps.TCPDialer != nil {
		return deps.TCPDialer
	}
	return func(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
		return net.DialTCP(network, laddr, raddr)
	}
}

// GetPacketListenerFunc returns the packet listener function from
// dependencies, or a default implementation based on net.ListenPacket.
func GetPacketListenerFunc(deps *Dependencies) PacketListenerFunc {
	if deps != nil && deps.PacketListener != nil {
		return deps.PacketListener
	}
	return func(network, address string) (net.PacketConn, error) {
		return net.ListenPacket(network, address)
	}
}

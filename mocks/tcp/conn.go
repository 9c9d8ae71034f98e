package tcp

import "net"

// MockTCPConn is one end of an in-memory connection. It carries the TCP
// addresses the mock network assigned so that code inspecting LocalAddr or
// RemoteAddr sees plausible *net.TCPAddr values instead of pipe addresses.
type MockTCPConn struct {
	net.Conn
	localAddr  *net.TCPAddr
	remoteAddr *net.TCPAddr
}

// newConnPair builds both ends of an in-memory connection between laddr and
// raddr. The first conn is the dialing side, the second the accepting side
// with the addresses mirrored.
func newConnPair(laddr, raddr *net.TCPAddr) (*MockTCPConn, *MockTCPConn) {
	dialEnd, acceptEnd := net.Pipe()

	client := &MockTCPConn{Conn: dialEnd, localAddr: laddr, remoteAddr: raddr}
	server := &MockTCPConn{Conn: acceptEnd, localAddr: raddr, remoteAddr: laddr}

	return client, server
}

// LocalAddr returns the assigned local address, falling back to the
// underlying conn when none was set.
func (c *MockTCPConn) LocalAddr() net.Addr {
	if c.localAddr != nil {
		return c.localAddr
	}
	return c.Conn.LocalAddr()
}

// RemoteAddr returns the assigned remote address, falling back to the
// underlying conn when none was set.
func (c *MockTCPConn) RemoteAddr() net.Addr {
	if c.remoteAddr != nil {
		return c.remoteAddr
	}
	return c.Conn.RemoteAddr()
}

var _ net.Conn = (*MockTCPConn)(nil)

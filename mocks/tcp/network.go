// Package tcp provides mock TCP network primitives for testing.
package tcp

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// MockTCPNetwork simulates a TCP network for testing without real network
// connections. Listeners and dialers communicate through in-memory pipes.
type MockTCPNetwork struct {
	listeners map[string]*MockTCPListener
	mu        sync.Mutex
}

// NewMockTCPNetwork creates a new mock TCP network.
func NewMockTCPNetwork() *MockTCPNetwork {
	return &MockTCPNetwork{
		listeners: make(map[string]*MockTCPListener),
	}
}

// ListenTCP creates a mock TCP listener on the specified address.
func (m *MockTCPNetwork) ListenTCP(network string, laddr *net.TCPAddr) (net.Listener, error) {
	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addr := laddr.String()
	if _, exists := m.listeners[addr]; exists {
		return nil, fmt.Errorf("address already in use: %s", addr)
	}

	listener := &MockTCPListener{
		addr:    laddr,
		connCh:  make(chan *MockTCPConn, 10),
		closeCh: make(chan struct{}),
		network: m,
	}
	m.listeners[addr] = listener

	return listener, nil
}

// DialTCP creates a mock TCP connection to the specified address. It
// matches the config.TCPDialerFunc signature so it can be injected through
// config.Dependencies.
func (m *MockTCPNetwork) DialTCP(network string, laddr, raddr *net.TCPAddr) (net.Conn, error) {
	if network != "tcp" {
		return nil, fmt.Errorf("unsupported network type: %s", network)
	}

	m.mu.Lock()
	listener, exists := m.listeners[raddr.String()]
	m.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("connection refused: no listener on %s", raddr.String())
	}

	if laddr == nil {
		laddr = &net.TCPAddr{
			IP:   net.IPv4(127, 0, 0, 1),
			Port: 50000 + (int(time.Now().UnixNano()) % 10000), // mock ephemeral port
		}
	}

	mockClient, mockServer := newConnPair(laddr, raddr)

	select {
	case listener.connCh <- mockServer:
		// connection established
	case <-listener.closeCh:
		mockClient.Close()
		mockServer.Close()
		return nil, fmt.Errorf("connection refused: listener closed")
	case <-time.After(1 * time.Second):
		mockClient.Close()
		mockServer.Close()
		return nil, fmt.Errorf("connection timeout")
	}

	return mockClient, nil
}

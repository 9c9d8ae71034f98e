// Package tcp provides the TCP transport for telwrap.
package tcp

import (
	"context"
	"fmt"
	"net"
	"time"

	"telwrap/pkg/config"
)

// Dialer implements the transport.Dialer interface for TCP connections.
type Dialer struct {
	tcpAddr *net.TCPAddr
	timeout time.Duration
	dialFn  config.TCPDialerFunc
}

// NewDialer creates a TCP dialer for the specified address. The timeout
// bounds connection establishment; 0 means the OS default. The deps
// parameter is optional and can be nil to use net.DialTCP.
func NewDialer(addr string, timeout time.Duration, deps *config.Dependencies) (*Dialer, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	return &Dialer{
		tcpAddr: tcpAddr,
		timeout: timeout,
		dialFn:  config.GetTCPDialerFunc(deps),
	}, nil
}

type dialResult struct {
	conn net.Conn
	err  error
}

// Dial establishes a TCP connection to the configured address with
// keep-alive enabled. The dial function runs in a separate goroutine so the
// attempt can be bounded by the timeout and the context.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	resCh := make(chan dialResult, 1)
	go func() {
		conn, err := d.dialFn("tcp", nil, d.tcpAddr)
		resCh <- dialResult{conn: conn, err: err}
	}()

	var timeoutCh <-chan time.Time
	if d.timeout > 0 {
		timer := time.NewTimer(d.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case res := <-resCh:
		if res.err != nil {
			return nil, fmt.Errorf("dial tcp %s: %w", d.tcpAddr.String(), res.err)
		}
		if tcpConn, ok := res.conn.(*net.TCPConn); ok {
			tcpConn.SetKeepAlive(true)
		}
		return res.conn, nil
	case <-timeoutCh:
		go discardResult(resCh)
		return nil, fmt.Errorf("dial tcp %s: timeout after %s", d.tcpAddr.String(), d.timeout)
	case <-ctx.Done():
		go discardResult(resCh)
		return nil, fmt.Errorf("dial tcp %s: %w", d.tcpAddr.String(), ctx.Err())
	}
}

// discardResult closes a late connection from an abandoned dial attempt.
func discardResult(resCh <-chan dialResult) {
	if res := <-resCh; res.conn != nil {
		res.conn.Close()
	}
}

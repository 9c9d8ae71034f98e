package telnet

import (
	"net"
	"time"
)

// blocking is the backend for the synchronous I/O model: every operation
// runs on the calling goroutine and blocks it directly on the connection,
// using read deadlines to bound waits. Bytes read past a delimiter stay in
// the pending buffer until a later read consumes them.
type blocking struct {
	conn    net.Conn
	pending []byte
	closed  bool
}

func newBlocking(conn net.Conn) *blocking {
	return &blocking{conn: conn}
}

func (b *blocking) readUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	if b.closed {
		return nil, ErrClosed
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	buf := make([]byte, chunkSize)
	for {
		if head, rest, found := cutDelim(b.pending, delim); found {
			b.pending = append([]byte(nil), rest...)
			return head, nil
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return b.drain(), nil
		}

		// a zero deadline means block indefinitely
		b.conn.SetReadDeadline(deadline)

		n, err := b.conn.Read(buf)
		b.pending = append(b.pending, buf[:n]...)
		if err != nil {
			// Timeout and peer close both end the wait; either way the
			// caller gets everything gathered so far, never an error.
			return b.drain(), nil
		}
	}
}

func (b *blocking) readSome() ([]byte, error) {
	if b.closed {
		return nil, ErrClosed
	}

	if len(b.pending) > 0 {
		return b.drain(), nil
	}

	b.conn.SetReadDeadline(time.Time{})

	buf := make([]byte, chunkSize)
	for {
		n, err := b.conn.Read(buf)
		if n > 0 {
			return append([]byte(nil), buf[:n]...), nil
		}
		if err != nil {
			return nil, nil // peer closed
		}
	}
}

func (b *blocking) readEager() ([]byte, error) {
	if b.closed {
		return nil, ErrClosed
	}

	out := b.drain()

	// one bounded poll for data already on the wire
	b.conn.SetReadDeadline(time.Now().Add(eagerPoll))

	buf := make([]byte, chunkSize)
	n, _ := b.conn.Read(buf) // errors mean "nothing available"
	out = append(out, buf[:n]...)

	return out, nil
}

func (b *blocking) write(p []byte) error {
	if b.closed {
		return ErrClosed
	}

	if _, err := b.conn.Write(p); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}

	return nil
}

// close releases the connection. Calling it again is a no-op.
func (b *blocking) close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	return b.conn.Close()
}

// drain hands the whole pending buffer to the caller.
func (b *blocking) drain() []byte {
	out := b.pending
	b.pending = nil
	return out
}

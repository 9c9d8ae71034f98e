package telnet

import (
	"net"
	"time"
)

// eventLoop is the backend for the cooperative I/O model. A dedicated
// worker goroutine owns all connection state; public operations enqueue one
// request on the worker's channel and block until it has been executed, so
// from the outside the backend behaves exactly like the blocking one. A
// separate reader goroutine pulls bounded chunks off the wire and feeds
// them to the worker through a channel, which is what lets the worker race
// reads against timeouts without ever discarding data.
type eventLoop struct {
	conn net.Conn

	reqCh      chan func()
	chunks     chan []byte
	stop       chan struct{} // tells the reader to stop delivering
	readerDone chan struct{} // the reader released the connection
	done       chan struct{} // the worker shut down, backend is closed

	// owned by the worker goroutine
	pending []byte
}

func newEventLoop(conn net.Conn) *eventLoop {
	b := &eventLoop{
		conn:       conn,
		reqCh:      make(chan func()),
		chunks:     make(chan []byte, 32),
		stop:       make(chan struct{}),
		readerDone: make(chan struct{}),
		done:       make(chan struct{}),
	}

	go b.readLoop()
	go b.serve()

	return b
}

// readLoop pulls chunks off the wire as soon as they arrive. Any read
// error, including a peer reset, ends the stream: the chunk channel is
// closed and the contract reports the condition as closure, not as an
// error.
func (b *eventLoop) readLoop() {
	defer close(b.readerDone)

	buf := make([]byte, chunkSize)
	for {
		n, err := b.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			select {
			case b.chunks <- chunk:
			case <-b.stop:
				return
			}
		}
		if err != nil {
			close(b.chunks)
			return
		}
	}
}

// serve executes one request to completion before accepting the next, so
// operations on the instance never overlap and run in invocation order.
func (b *eventLoop) serve() {
	for {
		select {
		case fn := <-b.reqCh:
			fn()
		case <-b.done:
			return
		}
	}
}

// do submits fn to the worker and blocks until it has run.
func (b *eventLoop) do(fn func()) error {
	ran := make(chan struct{})

	select {
	case b.reqCh <- func() { fn(); close(ran) }:
		<-ran
		return nil
	case <-b.done:
		return ErrClosed
	}
}

func (b *eventLoop) readUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	var out []byte
	if err := b.do(func() { out = b.handleReadUntil(delim, timeout) }); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *eventLoop) handleReadUntil(delim []byte, timeout time.Duration) []byte {
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	for {
		if head, rest, found := cutDelim(b.pending, delim); found {
			b.pending = append([]byte(nil), rest...)
			return head
		}

		select {
		case chunk, ok := <-b.chunks:
			if !ok {
				return b.drain() // peer closed mid-wait
			}
			b.pending = append(b.pending, chunk...)
		case <-timeoutCh:
			// the partial result keeps every byte read so far
			return b.drain()
		}
	}
}

// readSome blocks until at least one byte is available or the peer closes
// the stream, in which case it returns an empty result.
func (b *eventLoop) readSome() ([]byte, error) {
	var out []byte
	if err := b.do(func() { out = b.handleReadSome() }); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *eventLoop) handleReadSome() []byte {
	if len(b.pending) > 0 {
		return b.drain()
	}

	chunk, ok := <-b.chunks
	if !ok {
		return nil
	}
	return chunk
}

func (b *eventLoop) readEager() ([]byte, error) {
	var out []byte
	if err := b.do(func() { out = b.handleReadEager() }); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *eventLoop) handleReadEager() []byte {
	out := b.drain()

	// one bounded wait for a chunk still in flight from the reader
	grace := time.NewTimer(eagerPoll)
	defer grace.Stop()

	select {
	case chunk, ok := <-b.chunks:
		if !ok {
			return out
		}
		out = append(out, chunk...)
	case <-grace.C:
		return out
	}

	// sweep whatever else is already queued, without waiting
	for {
		select {
		case chunk, ok := <-b.chunks:
			if !ok {
				return out
			}
			out = append(out, chunk...)
		default:
			return out
		}
	}
}

// write blocks until the transport accepts the data. A slow peer exerts
// backpressure here through the connection's own flow control.
func (b *eventLoop) write(p []byte) error {
	var opErr error
	if err := b.do(func() {
		if _, err := b.conn.Write(p); err != nil {
			opErr = &ConnectionError{Op: "write", Err: err}
		}
	}); err != nil {
		return err
	}
	return opErr
}

// close shuts the connection down and waits until both the reader and the
// worker have stopped. Calling it again is a no-op.
func (b *eventLoop) close() error {
	var opErr error
	if err := b.do(func() {
		close(b.stop)
		opErr = b.conn.Close()
		<-b.readerDone
		close(b.done)
	}); err != nil {
		return nil // already closed
	}
	return opErr
}

// drain hands the whole pending buffer to the caller. Runs on the worker.
func (b *eventLoop) drain() []byte {
	out := b.pending
	b.pending = nil
	return out
}

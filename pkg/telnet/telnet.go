// Package telnet provides a unified client over a raw Telnet byte stream.
//
// A Client exposes one small contract regardless of the I/O model running
// underneath: Open, ReadUntil, ReadSome, ReadEager, Write, Close. The
// backend is chosen once at construction: a blocking backend driving the
// connection with read deadlines on the calling goroutine, or an event-loop
// backend in which a worker goroutine owns the connection and public calls
// block on a request channel. Both present identical semantics.
//
// The stream is treated opaquely: no IAC option negotiation, no terminal
// emulation. Delimiter matching in ReadUntil is a raw substring search.
//
// Read operations must not be called concurrently with each other; a single
// writer may run alongside a single reader, as with a net.Conn.
package telnet

import (
	"context"
	"fmt"
	"time"

	"telwrap/pkg/config"
	"telwrap/pkg/format"
	"telwrap/pkg/log"
	"telwrap/pkg/transport"
	"telwrap/pkg/transport/tcp"
	"telwrap/pkg/transport/udp"
	"telwrap/pkg/transport/ws"
)

// Client is the unified telnet client facade. A client is single-use: once
// closed it cannot be reopened, construct a new one instead.
type Client struct {
	cfg     *config.Shared
	backend backend
	closed  bool
}

// New creates a client for the given configuration. If cfg.Host is set the
// connection is opened immediately and any failure fails construction.
func New(ctx context.Context, cfg *config.Shared) (*Client, error) {
	c := &Client{cfg: cfg}

	if cfg.Host != "" {
		if err := c.Open(ctx); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Open establishes the connection configured in cfg and starts the selected
// backend. A client holds at most one connection: calling Open while
// connected is an error, and calling Open on a closed client returns
// ErrClosed.
func (c *Client) Open(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.backend != nil {
		return fmt.Errorf("telnet: already connected")
	}

	addr := format.Addr(c.cfg.Host, c.cfg.GetPort())
	logger := c.cfg.GetLogger()

	logger.InfoMsg("Connecting to %s\n", addr)
	logger.VerboseMsg("Dialing %s using protocol %s\n", addr, c.cfg.GetProtocol())

	d, err := c.newDialer(addr)
	if err != nil {
		return &ConnectionError{Op: "open " + addr, Err: err}
	}

	conn, err := d.Dial(ctx)
	if err != nil {
		return &ConnectionError{Op: "open " + addr, Err: err}
	}

	if c.cfg.LogFile != "" {
		logged, err := log.NewTranscriptConn(conn, c.cfg.LogFile)
		if err != nil {
			conn.Close()
			return &ConnectionError{Op: "open " + addr, Err: err}
		}
		conn = logged
	}

	if c.cfg.ForceBlocking {
		logger.VerboseMsg("Using the blocking backend\n")
		c.backend = newBlocking(conn)
	} else {
		logger.VerboseMsg("Using the event loop backend\n")
		c.backend = newEventLoop(conn)
	}

	return nil
}

func (c *Client) newDialer(addr string) (transport.Dialer, error) {
	switch proto := c.cfg.GetProtocol(); proto {
	case config.ProtoWS, config.ProtoWSS:
		return ws.NewDialer(addr, proto), nil
	case config.ProtoUDP:
		return udp.NewDialer(addr, c.cfg.Deps)
	default:
		return tcp.NewDialer(addr, c.cfg.Timeout, c.cfg.Deps)
	}
}

// ReadUntil blocks until delim appears in the stream or timeout elapses,
// whichever comes first. It returns the shortest prefix of the stream
// ending at the first occurrence of delim; bytes beyond the delimiter stay
// buffered for later reads. On timeout or peer close it returns whatever
// has been read so far with a nil error. A timeout <= 0 means wait
// indefinitely.
func (c *Client) ReadUntil(delim []byte, timeout time.Duration) ([]byte, error) {
	if c.backend == nil {
		return nil, ErrNotConnected
	}
	return c.backend.readUntil(delim, timeout)
}

// ReadSome blocks until at least one byte is available and returns it. An
// empty result means the peer closed the stream.
func (c *Client) ReadSome() ([]byte, error) {
	if c.backend == nil {
		return nil, ErrNotConnected
	}
	return c.backend.readSome()
}

// ReadEager returns any bytes already available without blocking beyond a
// negligible poll bound. An empty result means nothing was available; it is
// indistinguishable from a closed peer, which a caller detects through a
// subsequent failed Write.
func (c *Client) ReadEager() ([]byte, error) {
	if c.backend == nil {
		return nil, ErrNotConnected
	}
	return c.backend.readEager()
}

// Write sends p, blocking on transport backpressure until the data is
// accepted. A reset peer surfaces as a *ConnectionError.
func (c *Client) Write(p []byte) error {
	if c.backend == nil {
		return ErrNotConnected
	}
	return c.backend.write(p)
}

// Close releases the connection and stops the backend. It is idempotent:
// the second and later calls are no-ops returning nil.
func (c *Client) Close() error {
	if c.backend == nil {
		return ErrNotConnected
	}
	c.closed = true
	return c.backend.close()
}

// With runs fn with a freshly constructed client and guarantees exactly one
// Close when fn returns, fails, or panics. Construction failures are
// returned before fn runs.
func With(ctx context.Context, cfg *config.Shared, fn func(*Client) error) (err error) {
	c, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		cerr := c.Close()
		if cerr != nil && cerr != ErrNotConnected && err == nil {
			err = cerr
		}
	}()

	return fn(c)
}

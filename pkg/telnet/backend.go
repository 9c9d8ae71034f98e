package telnet

import (
	"bytes"
	"time"
)

// chunkSize bounds a single read off the wire.
const chunkSize = 1024

// eagerPoll bounds the best-effort poll of ReadEager. It must stay
// negligible next to any realistic socket timeout.
const eagerPoll = 5 * time.Millisecond

// backend is the transport I/O model behind the Client. Exactly one backend
// owns the connection for the lifetime of a client instance.
//
// All backends share the delivery contract: every byte pulled off the wire
// is returned to the caller exactly once, across any interleaving of the
// read operations. Timeouts end a read with the partial data gathered so
// far, never with an error.
type backend interface {
	readUntil(delim []byte, timeout time.Duration) ([]byte, error)
	readSome() ([]byte, error)
	readEager() ([]byte, error)
	write(p []byte) error
	close() error
}

// cutDelim splits buf at the end of the first occurrence of delim. The
// returned head includes the delimiter. An empty delimiter matches at
// offset zero.
func cutDelim(buf, delim []byte) (head, rest []byte, found bool) {
	i := bytes.Index(buf, delim)
	if i < 0 {
		return nil, buf, false
	}

	end := i + len(delim)
	return buf[:end], buf[end:], true
}

package telnet

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestCutDelim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		buf       string
		delim     string
		wantHead  string
		wantRest  string
		wantFound bool
	}{
		{"match at start", "login: root", "login: ", "login: ", "root", true},
		{"match in middle", "abcdef", "cd", "abcd", "ef", true},
		{"match at end", "abcdef", "ef", "abcdef", "", true},
		{"no match", "abcdef", "xy", "", "abcdef", false},
		{"first of two matches", "ab--cd--", "--", "ab--", "cd--", true},
		{"empty delimiter", "abc", "", "", "abc", true},
		{"empty buffer", "", "xy", "", "", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			head, rest, found := cutDelim([]byte(tc.buf), []byte(tc.delim))
			if found != tc.wantFound {
				t.Fatalf("cutDelim(%q, %q) found = %v, want %v", tc.buf, tc.delim, found, tc.wantFound)
			}
			if string(head) != tc.wantHead {
				t.Errorf("cutDelim(%q, %q) head = %q, want %q", tc.buf, tc.delim, head, tc.wantHead)
			}
			if string(rest) != tc.wantRest {
				t.Errorf("cutDelim(%q, %q) rest = %q, want %q", tc.buf, tc.delim, rest, tc.wantRest)
			}
		})
	}
}

// backendVariants lists the two I/O models under their names so every
// property below runs against both.
var backendVariants = []struct {
	name string
	mk   func(net.Conn) backend
}{
	{"blocking", func(c net.Conn) backend { return newBlocking(c) }},
	{"event loop", func(c net.Conn) backend { return newEventLoop(c) }},
}

// scriptStep is one timed payload from the fake peer.
type scriptStep struct {
	delay time.Duration
	send  []byte
}

// servePipe plays a script on the peer end of a pipe, then optionally
// closes it.
func servePipe(conn net.Conn, script []scriptStep, closeAfter bool) {
	go func() {
		for _, step := range script {
			time.Sleep(step.delay)
			if len(step.send) > 0 {
				if _, err := conn.Write(step.send); err != nil {
					return
				}
			}
		}
		if closeAfter {
			conn.Close()
		}
	}()
}

// Single delivery: over interleaved ReadUntil/ReadSome/ReadEager calls the
// returned bytes concatenate to the injected stream, nothing duplicated or
// dropped.
func TestBackend_SingleDelivery(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			servePipe(server, []scriptStep{
				{delay: 0, send: []byte("AAAA")},
				{delay: 50 * time.Millisecond, send: []byte("BBBB")},
				{delay: 50 * time.Millisecond, send: []byte("CCCC")},
			}, true)

			b := variant.mk(client)
			defer b.close()

			var got bytes.Buffer

			out, err := b.readUntil([]byte("AA"), 2*time.Second)
			if err != nil {
				t.Fatalf("readUntil(AA) error = %v", err)
			}
			if string(out) != "AA" {
				t.Fatalf("readUntil(AA) = %q, want %q", out, "AA")
			}
			got.Write(out)

			// leftover bytes past the delimiter come from the pending buffer
			out, err = b.readSome()
			if err != nil {
				t.Fatalf("readSome() error = %v", err)
			}
			if string(out) != "AA" {
				t.Fatalf("readSome() = %q, want pending %q", out, "AA")
			}
			got.Write(out)

			out, err = b.readUntil([]byte("BBBB"), 2*time.Second)
			if err != nil {
				t.Fatalf("readUntil(BBBB) error = %v", err)
			}
			got.Write(out)

			// give the last chunk time to arrive, then collect it eagerly
			time.Sleep(200 * time.Millisecond)
			out, err = b.readEager()
			if err != nil {
				t.Fatalf("readEager() error = %v", err)
			}
			got.Write(out)

			// stream ended: one more blocking read reports closure as empty
			out, err = b.readSome()
			if err != nil {
				t.Fatalf("readSome() after close error = %v", err)
			}
			got.Write(out)

			if want := "AAAABBBBCCCC"; got.String() != want {
				t.Errorf("delivered stream = %q, want %q", got.String(), want)
			}
		})
	}
}

// Timeout partiality: when the delimiter arrives only after the timeout,
// the read returns the prefix gathered so far, not an error.
func TestBackend_TimeoutPartiality(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			defer server.Close()
			servePipe(server, []scriptStep{
				{delay: 0, send: []byte("par")},
				{delay: 600 * time.Millisecond, send: []byte("tialX")},
			}, false)

			b := variant.mk(client)
			defer b.close()

			start := time.Now()
			out, err := b.readUntil([]byte("X"), 200*time.Millisecond)
			if err != nil {
				t.Fatalf("readUntil() error = %v", err)
			}
			if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
				t.Errorf("readUntil() took %s, want return around the 200ms timeout", elapsed)
			}
			if string(out) != "par" {
				t.Errorf("readUntil() = %q, want partial %q", out, "par")
			}
		})
	}
}

// Delimiter correctness: the result is the shortest prefix ending at the
// first occurrence of the delimiter, even when it spans chunk boundaries.
func TestBackend_DelimiterAcrossChunks(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			defer server.Close()
			servePipe(server, []scriptStep{
				{delay: 0, send: []byte("hel")},
				{delay: 30 * time.Millisecond, send: []byte("lo world")},
			}, false)

			b := variant.mk(client)
			defer b.close()

			out, err := b.readUntil([]byte("lo w"), 2*time.Second)
			if err != nil {
				t.Fatalf("readUntil() error = %v", err)
			}
			if string(out) != "hello w" {
				t.Errorf("readUntil() = %q, want %q", out, "hello w")
			}

			rest, err := b.readSome()
			if err != nil {
				t.Fatalf("readSome() error = %v", err)
			}
			if string(rest) != "orld" {
				t.Errorf("readSome() = %q, want %q", rest, "orld")
			}
		})
	}
}

// Non-blocking eager: with nothing available the call returns empty well
// inside any socket timeout.
func TestBackend_EagerDoesNotBlock(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			defer server.Close()

			b := variant.mk(client)
			defer b.close()

			start := time.Now()
			out, err := b.readEager()
			if err != nil {
				t.Fatalf("readEager() error = %v", err)
			}
			if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
				t.Errorf("readEager() took %s, want a negligible bound", elapsed)
			}
			if len(out) != 0 {
				t.Errorf("readEager() = %q, want empty", out)
			}
		})
	}
}

// Peer close during an unbounded readUntil returns the partial data.
func TestBackend_PeerCloseEndsReadUntil(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			servePipe(server, []scriptStep{
				{delay: 20 * time.Millisecond, send: []byte("no delimiter here")},
			}, true)

			b := variant.mk(client)
			defer b.close()

			out, err := b.readUntil([]byte("NEVER"), 2*time.Second)
			if err != nil {
				t.Fatalf("readUntil() error = %v", err)
			}
			if string(out) != "no delimiter here" {
				t.Errorf("readUntil() = %q, want %q", out, "no delimiter here")
			}
		})
	}
}

func TestBackend_ReadSomeOnClosedPeer(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			server.Close() // peer disappears without sending anything

			b := variant.mk(client)
			defer b.close()

			out, err := b.readSome()
			if err != nil {
				t.Fatalf("readSome() error = %v", err)
			}
			if len(out) != 0 {
				t.Errorf("readSome() = %q, want empty", out)
			}
		})
	}
}

func TestBackend_WriteAfterPeerClose(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			server.Close()

			b := variant.mk(client)
			defer b.close()

			err := b.write([]byte("ls\n"))
			if err == nil {
				t.Fatal("write() after peer close: expected error")
			}
			if _, ok := err.(*ConnectionError); !ok {
				t.Errorf("write() error = %T, want *ConnectionError", err)
			}
		})
	}
}

func TestBackend_DoubleCloseIsNoop(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			defer server.Close()

			b := variant.mk(client)

			if err := b.close(); err != nil {
				t.Fatalf("close() error = %v", err)
			}
			if err := b.close(); err != nil {
				t.Errorf("second close() error = %v, want nil", err)
			}
		})
	}
}

func TestBackend_OperationsAfterClose(t *testing.T) {
	t.Parallel()

	for _, variant := range backendVariants {
		variant := variant
		t.Run(variant.name, func(t *testing.T) {
			t.Parallel()

			client, server := net.Pipe()
			defer server.Close()

			b := variant.mk(client)
			if err := b.close(); err != nil {
				t.Fatalf("close() error = %v", err)
			}

			if _, err := b.readUntil([]byte("x"), time.Second); err != ErrClosed {
				t.Errorf("readUntil() after close error = %v, want ErrClosed", err)
			}
			if _, err := b.readSome(); err != ErrClosed {
				t.Errorf("readSome() after close error = %v, want ErrClosed", err)
			}
			if _, err := b.readEager(); err != ErrClosed {
				t.Errorf("readEager() after close error = %v, want ErrClosed", err)
			}
			if err := b.write([]byte("x")); err != ErrClosed {
				t.Errorf("write() after close error = %v, want ErrClosed", err)
			}
		})
	}
}

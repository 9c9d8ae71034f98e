package log

import (
	"net"
	"os"
	"time"
)

// transcriptConn wraps a net.Conn and appends everything read from and
// written to it to a transcript file.
type transcriptConn struct {
	conn net.Conn
	file *os.File
}

func (tc *transcriptConn) Read(b []byte) (int, error) {
	n, err := tc.conn.Read(b)
	if n > 0 {
		tc.file.Write(b[:n]) // best effort
	}
	return n, err
}

func (tc *transcriptConn) Write(b []byte) (int, error) {
	n, err := tc.conn.Write(b)
	if n > 0 {
		tc.file.Write(b[:n]) // best effort
	}
	return n, err
}

func (tc *transcriptConn) Close() error {
	tc.file.Close()
	return tc.conn.Close()
}

func (tc *transcriptConn) LocalAddr() net.Addr {
	return tc.conn.LocalAddr()
}

func (tc *transcriptConn) RemoteAddr() net.Addr {
	return tc.conn.RemoteAddr()
}

func (tc *transcriptConn) SetDeadline(t time.Time) error {
	return tc.conn.SetDeadline(t)
}

func (tc *transcriptConn) SetReadDeadline(t time.Time) error {
	return tc.conn.SetReadDeadline(t)
}

func (tc *transcriptConn) SetWriteDeadline(t time.Time) error {
	return tc.conn.SetWriteDeadline(t)
}

var _ net.Conn = (*transcriptConn)(nil)

// NewTranscriptConn wraps conn so that all data read from and written to it
// is appended to the file at path. The file is created if missing.
func NewTranscriptConn(conn net.Conn, path string) (net.Conn, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &transcriptConn{conn: conn, file: file}, nil
}

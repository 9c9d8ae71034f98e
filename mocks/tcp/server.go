package tcp

import (
	"bytes"
	"fmt"
	"net"
	"sync"
	"time"
)

// Step is one entry in a server script: wait for Delay, then send Send.
type Step struct {
	Delay time.Duration
	Send  []byte
}

// ScriptedServer accepts connections on a mock network and plays a fixed
// script on each one: for every step it sleeps the step's delay and writes
// the step's payload. Everything the client writes is recorded. With
// CloseAfter set, the server closes each connection once its script has
// been played, which lets tests exercise peer-close behavior.
type ScriptedServer struct {
	listener   net.Listener
	script     []Step
	closeAfter bool

	mu       sync.Mutex
	received bytes.Buffer
	conns    int

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewScriptedServer creates a server listening on addr within the given
// mock network.
func NewScriptedServer(network *MockTCPNetwork, addr string, script []Step, closeAfter bool) (*ScriptedServer, error) {
	laddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %w", addr, err)
	}

	ln, err := network.ListenTCP("tcp", laddr)
	if err != nil {
		return nil, err
	}

	s := &ScriptedServer{
		listener:   ln,
		script:     script,
		closeAfter: closeAfter,
		closed:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.acceptLoop()

	return s, nil
}

func (s *ScriptedServer) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns++
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *ScriptedServer) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	recordDone := make(chan struct{})
	go func() {
		defer close(recordDone)
		buf := make([]byte, 1024)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.received.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()

	for _, step := range s.script {
		select {
		case <-time.After(step.Delay):
		case <-s.closed:
			return
		}

		if len(step.Send) > 0 {
			if _, err := conn.Write(step.Send); err != nil {
				return
			}
		}
	}

	if s.closeAfter {
		return // deferred conn.Close ends the stream
	}

	// hold the connection open until the client disconnects or the
	// server shuts down
	select {
	case <-recordDone:
	case <-s.closed:
	}
}

// Received returns a copy of everything clients have written so far.
func (s *ScriptedServer) Received() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.received.Bytes()...)
}

// Conns returns the number of connections accepted so far.
func (s *ScriptedServer) Conns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Close stops accepting connections and tears down active handlers.
func (s *ScriptedServer) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.listener.Close()
	})
	s.wg.Wait()
	return nil
}

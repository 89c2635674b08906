package rpc

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/MrPickle311/database/lib/db"
	"github.com/MrPickle311/database/lib/exec"
	"github.com/MrPickle311/database/lib/logger"
	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
)

var Logger = logger.GetLogger("rpc")

var (
	requestsTotal      = metrics.NewCounter("db_requests_total")
	requestErrorsTotal = metrics.NewCounter("db_request_errors_total")
)

// --------------------------------------------------------------------------
// Server
// --------------------------------------------------------------------------

// Server accepts TCP connections and feeds them to a fixed-size worker
// pool. Connections are one-shot request/response: read until the
// terminator, execute synchronously, write the framed reply, close.
type Server struct {
	config   Config
	executor *exec.Executor

	listener net.Listener
	conns    chan net.Conn
	wg       sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewServer creates a server for the given configuration and stores.
func NewServer(config Config, stores *db.Stores) *Server {
	return &Server{
		config:   config,
		executor: exec.NewExecutor(stores),
		conns:    make(chan net.Conn),
	}
}

// Serve listens on the configured port and blocks until Shutdown. The
// worker pool size comes from the configuration.
func (s *Server) Serve() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	Logger.Infof("Listening on %s with %d workers", listener.Addr(), s.config.ThreadCount)

	// Start the worker pool
	s.wg.Add(s.config.ThreadCount)
	for i := 0; i < s.config.ThreadCount; i++ {
		go s.worker()
	}

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				break
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}
		s.conns <- conn
	}

	// Let in-flight workers drain before returning
	close(s.conns)
	s.wg.Wait()
	Logger.Infof("Server stopped")
	return nil
}

// Addr returns the bound listener address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops the accept loop. Serve returns after the in-flight
// connections finish.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.listener != nil {
		s.listener.Close()
	}
}

// --------------------------------------------------------------------------
// Worker Pool
// --------------------------------------------------------------------------

// worker serves connections from the shared channel until it closes.
func (s *Server) worker() {
	defer s.wg.Done()
	for conn := range s.conns {
		s.handle(conn)
	}
}

// handle serves one connection: read the request, execute, reply, close.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	requestsTotal.Inc()

	request, err := ReadRequest(bufio.NewReader(conn))
	if err != nil {
		if err != io.EOF {
			Logger.Errorf("Read error on connection %s: %v", connID, err)
		}
		return
	}
	Logger.Debugf("Connection %s request: %s", connID, request)

	var reply string
	payload, derr := s.executor.Run(request)
	if derr != nil {
		requestErrorsTotal.Inc()
		Logger.Debugf("Connection %s error: %v", connID, derr)
		reply = FormatError(derr)
	} else {
		reply = FormatReply(payload)
	}

	if _, err := io.WriteString(conn, reply); err != nil {
		Logger.Errorf("Write error on connection %s: %v", connID, err)
	}
}

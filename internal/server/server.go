package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultGracePeriod = 3 * time.Second
	defaultAddress     = "localhost:4444"
)

// Config controls the acceptor and the sessions it spawns.
type Config struct {
	Address     string
	GracePeriod time.Duration

	// MaxWorkers bounds in-flight requests per session. Zero or less means
	// unbounded.
	MaxWorkers int
	// RequestsPerSecond limits how fast a session dispatches requests.
	// Zero or less disables the limit.
	RequestsPerSecond float64
	Burst             int
}

// Server accepts connections and runs one session per connection.
type Server struct {
	config  Config
	handler Handler

	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	mu        sync.Mutex // orders wg.Add against the shutdown in Stop
	wg        sync.WaitGroup
	sessions  sync.Map // int64 -> net.Conn
	sessionID int64
}

func New(config Config, handler Handler) *Server {
	if config.Address == "" {
		config.Address = defaultAddress
	}
	if config.GracePeriod <= 0 {
		config.GracePeriod = defaultGracePeriod
	}
	return &Server{config: config, handler: handler}
}

// Start listens on the configured address and accepts connections in the
// background until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.config.Address, err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)

	log.Printf("Dictionary server started on %s", listener.Addr())

	go func() {
		<-s.ctx.Done()
		if err := listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("Error closing listener: %v", err)
		}
	}()

	go s.acceptLoop()
	return nil
}

// Addr returns the listening address. It is only valid after Start.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		id, ok := s.track(conn)
		if !ok {
			return
		}
		go func() {
			defer s.wg.Done()
			defer s.sessions.Delete(id)
			newSession(id, conn, s.handler, s.config).serve(s.ctx)
		}()
	}
}

// track registers conn as a live session. Once shutdown has begun it closes
// conn instead and reports false.
func (s *Server) track(conn net.Conn) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		conn.Close()
		return 0, false
	}
	id := atomic.AddInt64(&s.sessionID, 1)
	s.wg.Add(1)
	s.sessions.Store(id, conn)
	return id, true
}

// Stop closes the listener and waits up to the grace period for sessions to
// end on their own. Remaining connections are then closed, which ends their
// read loops; in-flight workers still finish before Stop returns.
func (s *Server) Stop() {
	if s.cancel == nil {
		return
	}
	log.Println("Shutting down...")
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.config.GracePeriod):
		log.Println("Grace period exceeded. Closing remaining connections.")
		s.sessions.Range(func(key, value any) bool {
			value.(net.Conn).Close()
			return true
		})
		<-done
	}

	log.Println("Shutdown complete")
}

package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NivBraz/dictionary-service/internal/models"
	"github.com/NivBraz/dictionary-service/pkg/wire"
)

// Handler computes the response to one request. It must be safe for
// concurrent use.
type Handler interface {
	Handle(request string) string
}

// session owns one client connection. A single reader goroutine pulls
// frames and hands each to a worker; workers write responses as they finish,
// so responses can leave in a different order than requests arrived.
type session struct {
	id      int64
	conn    net.Conn
	handler Handler
	limiter *rate.Limiter
	workers errgroup.Group

	writeMu sync.Mutex
}

func newSession(id int64, conn net.Conn, handler Handler, cfg Config) *session {
	s := &session{
		id:      id,
		conn:    conn,
		handler: handler,
	}
	if cfg.MaxWorkers > 0 {
		s.workers.SetLimit(cfg.MaxWorkers)
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}
	return s
}

// serve runs until the client sends EXIT, the connection fails or ctx is
// cancelled. It waits for dispatched workers before closing the connection.
func (s *session) serve(ctx context.Context) {
	remote := s.conn.RemoteAddr()
	log.Printf("Session %d: accepted connection from %s", s.id, remote)

	defer func() {
		s.workers.Wait()
		if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("Session %d: error closing connection: %v", s.id, err)
		}
		log.Printf("Session %d: closed connection from %s", s.id, remote)
	}()

	reader := bufio.NewReader(s.conn)
	for {
		request, err := wire.ReadFrame(reader)
		if errors.Is(err, wire.ErrInvalidUTF8) {
			// The frame was fully consumed, so the stream is still usable.
			s.workers.Go(func() error {
				s.respond("Error: Invalid request encoding.")
				return nil
			})
			continue
		}
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				log.Printf("Session %d: client disconnected: %v", s.id, err)
			}
			return
		}

		if strings.EqualFold(request, models.ExitCommand) {
			return
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
		}

		// Go blocks while MaxWorkers requests are in flight, which stops
		// reading and pushes back on the client.
		s.workers.Go(func() error {
			s.respond(s.handler.Handle(request))
			return nil
		})
	}
}

// respond writes one response frame. Only one frame is written at a time.
func (s *session) respond(response string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := wire.WriteFrame(s.conn, response)
	if errors.Is(err, wire.ErrFrameTooLarge) {
		err = wire.WriteFrame(s.conn, "Error: Response too large.")
	}
	if err != nil {
		log.Printf("Session %d: error writing response: %v", s.id, err)
	}
}

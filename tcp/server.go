// Package tcp serves the dashdoc search page over plain TCP connections,
// one request per connection.
package tcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Responder answers one request read from r by writing to w.
type Responder interface {
	Respond(ctx context.Context, r io.Reader, w io.Writer) error
}

// Server accepts connections and hands each one to a Responder. Every
// connection carries exactly one request and is closed after the response.
type Server struct {
	responder Responder
	logger    *slog.Logger

	// MaxConns bounds the connections served at once. Zero means no bound.
	MaxConns int

	// Limiter, if set, throttles how fast connections are accepted.
	Limiter *rate.Limiter

	// ReadTimeout bounds the time spent on a single connection, reading the
	// request and writing the response. Zero means no deadline.
	ReadTimeout time.Duration
}

// NewServer creates a new Server.
func NewServer(responder Responder, logger *slog.Logger) *Server {
	return &Server{responder: responder, logger: logger}
}

// ListenAndServe listens on the TCP address addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. It closes ln and waits
// for in-flight connections before returning. A canceled context is a
// normal shutdown and yields a nil error.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	s.logger.Info("listening", "addr", ln.Addr().String())

	var g errgroup.Group
	if s.MaxConns > 0 {
		g.SetLimit(s.MaxConns)
	}

	var err error
	for {
		if s.Limiter != nil {
			if werr := s.Limiter.Wait(ctx); werr != nil {
				break
			}
		}

		conn, aerr := ln.Accept()
		if aerr != nil {
			if ctx.Err() == nil && !errors.Is(aerr, net.ErrClosed) {
				err = aerr
			}
			break
		}

		g.Go(func() error {
			s.handle(ctx, conn)
			return nil
		})
	}

	ln.Close()
	_ = g.Wait()
	return err
}

// handle serves a single connection.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// Unblock a client that is still sending when the server shuts down.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	id := uuid.New().String()
	begin := time.Now()

	if s.ReadTimeout > 0 {
		_ = conn.SetDeadline(begin.Add(s.ReadTimeout))
	}

	err := s.responder.Respond(ctx, conn, conn)

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "request",
		"id", id,
		"remote", conn.RemoteAddr().String(),
		"duration", time.Since(begin),
		"err", err,
	)
}

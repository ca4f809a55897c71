package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/dashdoc"
	"github.com/fwojciec/dashdoc/config"
	dashhttp "github.com/fwojciec/dashdoc/http"
	"github.com/fwojciec/dashdoc/tcp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := *deps.Config
	c.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dashdoc.ErrorMessage(err))
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	if c.HTTP {
		return serveHTTP(deps, &cfg, ln)
	}

	srv := tcp.NewServer(deps.Responder, deps.Logger)
	srv.MaxConns = cfg.MaxConns
	srv.ReadTimeout = cfg.ReadTimeout
	if cfg.RequestsPerSecond > 0 {
		srv.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return srv.Serve(deps.Ctx, ln)
}

// apply overrides cfg with the serve flags that were set.
func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.MaxConns != 0 {
		cfg.MaxConns = c.MaxConns
	}
	if c.Rate != 0 {
		cfg.RequestsPerSecond = c.Rate
	}
	if c.ReadTimeout != 0 {
		cfg.ReadTimeout = c.ReadTimeout
	}
}

// serveHTTP serves the search page through net/http on ln until the
// context is done.
func serveHTTP(deps *Dependencies, cfg *config.Config, ln net.Listener) error {
	srv := &http.Server{
		Handler:           dashhttp.NewHandler(deps.Responder, deps.Logger),
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.ReadTimeout,
	}

	deps.Logger.Info("listening", "addr", ln.Addr().String(), "transport", "http")

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

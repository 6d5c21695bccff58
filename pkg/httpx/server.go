// Package httpx provides the HTTP server lifecycle and response plumbing
// shared by the volscope binary: a server with sane timeouts and graceful
// shutdown, JSON response helpers, health handlers, and logging/recovery
// middleware.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Server wraps http.Server with graceful start/stop and structured logging.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a server listening on addr with the given handler.
// A nil logger falls back to slog.Default().
func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving and blocks until the server stops. A graceful
// shutdown via Stop is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully, waiting up to timeout for inflight
// requests to finish.
func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server stopping", "timeout", timeout)
	return s.server.Shutdown(ctx)
}

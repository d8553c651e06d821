package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teidesat/obc-telemetry/internal/config"
)

// Server serves the pipeline instrumentation over HTTP so operators can
// scrape queue depth and packet counters between contact windows.
type Server struct {
	cfg      config.MetricsConfig
	listener net.Listener
	server   *http.Server
}

// NewServer creates a scrape endpoint server from the agent config. An
// empty path falls back to /metrics.
func NewServer(cfg config.MetricsConfig) *Server {
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
	return &Server{cfg: cfg}
}

// Start binds the listen address and serves the scrape endpoint in the
// background. Bind failures are reported synchronously so the agent can
// refuse to start half-instrumented.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("metrics listen on %s: %w", s.cfg.Listen, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, promhttp.Handler())

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("metrics endpoint listening", "addr", ln.Addr().String(), "path", s.cfg.Path)

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics endpoint failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, which differs from the configured one
// when the config left the port to the kernel.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Listen
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight scrapes and closes the endpoint. A no-op when
// the server was never started.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics endpoint shutdown: %w", err)
	}

	slog.Info("metrics endpoint stopped")
	return nil
}

// Package httpserver wires the annotate and browse endpoints into one HTTP server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/reportlink/internal/annotate"
	"git.home.luguber.info/inful/reportlink/internal/browse"
	"git.home.luguber.info/inful/reportlink/internal/config"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
	"git.home.luguber.info/inful/reportlink/internal/server/middleware"
)

// maxAnnotateBody caps annotate request bodies; tool output beyond this is
// better streamed through the CLI.
const maxAnnotateBody = 16 << 20

// Server exposes annotation and file browsing over HTTP.
type Server struct {
	cfg       *config.Config
	annotator *annotate.Service
	browser   *browse.Handler
	registry  *prometheus.Registry

	httpServer *http.Server
	mchain     func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance. The registry may be nil
// when metrics are disabled.
func New(cfg *config.Config, annotator *annotate.Service, browser *browse.Handler, registry *prometheus.Registry) *Server {
	return &Server{
		cfg:       cfg,
		annotator: annotator,
		browser:   browser,
		registry:  registry,
		mchain:    middleware.Chain(slog.Default()),
	}
}

// Handler builds the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /annotate", s.handleAnnotate)
	mux.Handle(s.cfg.Server.LinkPrefix+"/", s.browser)
	mux.HandleFunc("GET "+s.cfg.Monitoring.Health.Path, s.handleHealth)
	if s.cfg.Monitoring.Metrics.Enabled && s.registry != nil {
		mux.Handle("GET "+s.cfg.Monitoring.Metrics.Path,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return s.mchain(mux)
}

// Start begins serving and blocks until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Listen, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  config.Duration(s.cfg.Server.ReadTimeout, 0),
		WriteTimeout: config.Duration(s.cfg.Server.WriteTimeout, 0),
	}

	slog.Info("HTTP server listening", slog.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAnnotateBody))
	if err != nil {
		slog.Warn("Annotate request body read failed", logfields.Error(err))
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, s.annotator.AnnotateString(r.Context(), string(body)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

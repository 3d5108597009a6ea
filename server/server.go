// Package server exposes the latest published snapshot and metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/render"
)

// SnapshotSource yields the most recently published frame
type SnapshotSource interface {
	Snapshot() *models.Snapshot
}

// Config for the server
type Config struct {
	Addr     string
	Source   SnapshotSource
	Gatherer prometheus.Gatherer // nil disables /metrics
	Logger   *slog.Logger
}

// Server is a read-only HTTP view of a running session
type Server struct {
	config Config
	logger *slog.Logger
	mux    *http.ServeMux
}

// New builds a server and registers its routes
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config: config,
		logger: logger.With("component", "server"),
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("/", s.handleIndex())
	s.mux.HandleFunc("/healthz", s.handleHealth())
	s.mux.HandleFunc("/api/graph", s.handleAPIGraph())
	s.mux.HandleFunc("/visualize", s.handleVisualize())
	if config.Gatherer != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	}
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}

// handleIndex lists the available endpoints
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>forcegraph</title>
  <style>
    body { font-family: 'Helvetica Neue', Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; color: #333; }
    .container { max-width: 900px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; }
    img { max-width: 100%; border: 1px solid #eee; }
  </style>
</head>
<body>
  <div class="container">
    <h1>forcegraph</h1>
    <p><a href="/api/graph">/api/graph</a> latest snapshot as JSON</p>
    <p><a href="/visualize?format=svg">/visualize</a> latest snapshot as svg, ascii, dot or json</p>
    <p><a href="/metrics">/metrics</a> Prometheus metrics</p>
    <img src="/visualize?format=svg" alt="latest snapshot">
  </div>
</body>
</html>
`)
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, "ok")
	}
}

// handleAPIGraph provides a JSON API for the latest snapshot
func (s *Server) handleAPIGraph() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap := s.latest()
		if snap == nil {
			http.Error(w, "No snapshot published yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snap); err != nil {
			s.logger.Warn("failed to encode snapshot", "error", err)
		}
	}
}

// handleVisualize renders the latest snapshot in the requested format
func (s *Server) handleVisualize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "svg"
		}

		snap := s.latest()
		if snap == nil {
			http.Error(w, "No snapshot published yet", http.StatusServiceUnavailable)
			return
		}

		options := render.NewDefaultOptions(format)
		if v := r.URL.Query().Get("width"); v != "" {
			if width, err := strconv.Atoi(v); err == nil && width > 0 {
				options.Width = render.ClampDimension(float64(width))
			}
		}
		if v := r.URL.Query().Get("height"); v != "" {
			if height, err := strconv.Atoi(v); err == nil && height > 0 {
				options.Height = render.ClampDimension(float64(height))
			}
		}
		if scheme := r.URL.Query().Get("scheme"); scheme != "" {
			options.ColorScheme = scheme
		}

		renderer, err := render.GetRenderer(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		output, err := renderer.Render(snap, options)
		if err != nil {
			s.logger.Error("render failed", "format", format, "error", err)
			http.Error(w, "Error generating visualization: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType(format))
		if _, err := w.Write(output); err != nil {
			s.logger.Debug("write failed", "error", err)
		}
	}
}

func (s *Server) latest() *models.Snapshot {
	if s.config.Source == nil {
		return nil
	}
	return s.config.Source.Snapshot()
}

func contentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "json":
		return "application/json"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Package web serves the browser dashboard. Every request loads the dataset
// through the configured Loader, classifies its columns and renders the
// aggregations; nothing is kept between requests except what the Loader
// caches.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/config"
	"github.com/KaramelBytes/paperdash/internal/dataset"
	"github.com/KaramelBytes/paperdash/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Widget bounds.
const (
	MinTopN       = 5
	MaxTopN       = 20
	MinSampleSize = 1
	MaxSampleSize = 100
)

// Server renders the dashboard pages and chart images.
type Server struct {
	cfg    *config.Global
	loader dataset.Loader
	log    *slog.Logger
	pages  map[string]*template.Template
}

// New builds a server reading cfg.DataPath through loader. A nil logger
// discards request logs.
func New(cfg *config.Global, loader dataset.Loader, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("web: nil config")
	}
	if loader == nil {
		return nil, errors.New("web: nil loader")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, loader: loader, log: logger, pages: pages}, nil
}

var funcs = template.FuncMap{
	"thousands": utils.FormatThousands,
	"label":     analysis.DisplayLabel,
	"float":     func(f float64) string { return fmt.Sprintf("%.4g", f) },
	"selected": func(set map[string]bool, name string) bool {
		return set[name]
	},
}

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{"dashboard", "explorer", "about", "error"} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /explorer", s.handleExplorer)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /charts/timeseries.svg", s.handleTimeSeriesChart)
	mux.HandleFunc("GET /charts/journals.svg", s.handleJournalsChart)
	mux.HandleFunc("GET /api/dashboard", s.handleAPIDashboard)
	return s.logRequests(mux)
}

// ListenAndServe serves on cfg.ListenAddr until ctx is cancelled, then shuts
// down gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr().String())
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// load reads the configured dataset. The caller releases the table.
func (s *Server) load() (*dataset.Table, error) {
	return s.loader.Load(s.cfg.DataPath)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

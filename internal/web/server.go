// Package web provides the HTTP server and handlers for the HR analytics
// dashboard. Presentation only: every request re-reads the dataset and runs
// the pipeline fresh, so the API never serves stale aggregates.
package web

import (
	"context"
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hrpulse/internal/config"
	"hrpulse/internal/insight"
	"hrpulse/internal/report"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the analytics dashboard.
type Server struct {
	cfg     *config.Config
	insight *insight.Client
	reports *report.Generator
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		insight: insight.New(cfg.Insight),
		reports: report.NewGenerator(cfg.Report.OutputDir),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes registers all routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Handle("/static/*", http.FileServer(http.FS(staticFiles)))
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/issues", s.handleIssues)
		r.Get("/records", s.handleRecords)
		r.Post("/insights", s.handleInsights)
		r.Post("/report", s.handleReport)
	})
}

// Handler returns the underlying router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for requests. Blocks until the server stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

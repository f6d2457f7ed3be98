// Package report serves operator-facing HTML reports about generation runs,
// rendered from markdown, on a port separate from the JSON API.
package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"rehabengine/domain/dataset"
	"rehabengine/internal"
)

// Server represents the report server.
type Server struct {
	router *chi.Mux
	store  *dataset.Store
	logger *internal.Logger
}

// NewServer builds the report server over a shared dataset store.
func NewServer(store *dataset.Store, logger *internal.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		logger: logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)
	s.router.Get("/reports/generation", s.handleGenerationReport)
	s.router.Get("/reports/generation/{name}", s.handleGenerationReport)
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	s.logger.Info("Report server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReadyz reports ready once at least one dataset has been generated.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Current(); err != nil {
		http.Error(w, "no dataset generated yet", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (s *Server) handleGenerationReport(w http.ResponseWriter, r *http.Request) {
	var snap *dataset.Snapshot
	var err error
	if name := chi.URLParam(r, "name"); name != "" {
		snap, err = s.store.Get(name)
	} else {
		snap, err = s.store.Current()
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	md := buildGenerationReport(snap)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(renderHTML(md))
}

// renderHTML converts markdown to a standalone HTML page body.
func renderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML(md, p, renderer)
}

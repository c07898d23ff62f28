// Package server exposes the item catalog as the JSON API consumed by the
// card viewer, and serves the static page that hosts the browser build.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/five82/cardview/internal/catalog"
)

// Options configure optional server collaborators.
type Options struct {
	Logger *zap.Logger
	// WebDir is served under /static/ when non-empty.
	WebDir string
	// AllowedOrigins defaults to any origin.
	AllowedOrigins []string
}

// Server holds the HTTP server dependencies.
type Server struct {
	catalog *catalog.Catalog
	router  chi.Router
	logger  *zap.Logger
	webDir  string
	origins []string
}

// New creates a new API server over cat.
func New(cat *catalog.Catalog, opts Options) *Server {
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		catalog: cat,
		router:  chi.NewRouter(),
		logger:  logger,
		webDir:  opts.WebDir,
		origins: origins,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/items", s.handleListItems)
		r.Get("/random", s.handleRandom)
		r.Get("/search", s.handleSearch)
		r.Get("/categories", s.handleCategories)
	})

	if s.webDir != "" {
		FileServer(s.router, "/static", http.Dir(s.webDir))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondProblem(w, r, http.StatusNotFound, errNotFound)
	})
}

// Package api provides the HTTP API server over the generated airport
// dataset.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/airatlasapp/airatlas-server/internal/dataset"
	"github.com/airatlasapp/airatlas-server/internal/ratelimit"
	"github.com/airatlasapp/airatlas-server/internal/search"
	"github.com/airatlasapp/airatlas-server/internal/service"
	"github.com/airatlasapp/airatlas-server/internal/store"
	"github.com/airatlasapp/airatlas-server/internal/validation"
)

// UpdateRunner triggers one update pass. Implemented by service.UpdateService.
type UpdateRunner interface {
	Run(ctx context.Context) (*service.RunResult, error)
}

// Server holds dependencies for HTTP handlers. It serves country files
// straight from the store and keeps the global index and the search index in
// memory, reloading both when the dataset changes.
type Server struct {
	store      *store.Store
	search     *search.Index
	updater    UpdateRunner
	router     *chi.Mux
	logger     *slog.Logger
	validate   *validation.Validator
	limiter    *ratelimit.Keyed
	adminToken string

	mu    sync.RWMutex
	index []dataset.IndexEntry

	updating atomic.Bool
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(st *store.Store, searchIdx *search.Index, updater UpdateRunner, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		search:   searchIdx,
		updater:  updater,
		router:   chi.NewRouter(),
		logger:   logger,
		validate: validation.New(),
		limiter:  ratelimit.New(10, 20),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// SetAdminToken enables bearer-token protection on the admin endpoints.
func (s *Server) SetAdminToken(token string) {
	s.adminToken = token
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/countries", s.handleListCountries)
		r.Get("/countries/{code}", s.handleGetCountry)
		r.Get("/search", s.handleSearch)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Post("/update", s.handleTriggerUpdate)
		})
	})
}

// ReloadData refreshes the cached country index and rebuilds the search index
// from the on-disk dataset. Called at startup and whenever the watcher sees
// the index file change.
func (s *Server) ReloadData() error {
	entries, err := s.store.ReadIndex()
	if err != nil {
		return err
	}

	datasets := make([]dataset.CountryDataset, 0, len(entries))
	for _, entry := range entries {
		ds, err := s.store.ReadCountry(entry.Code)
		if err != nil {
			s.logger.Warn("skipping unreadable country file", "country", entry.Code, "error", err)
			continue
		}
		datasets = append(datasets, *ds)
	}

	if s.search != nil {
		if err := s.search.Rebuild(datasets); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.index = entries
	s.mu.Unlock()

	s.logger.Info("dataset loaded", "countries", len(entries))
	return nil
}

// cachedIndex returns the in-memory index, or nil when no dataset has been
// generated yet.
func (s *Server) cachedIndex() []dataset.IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Package server provides the local HTTP API for Kaisetsu.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kaisetsu/internal/config"
	"github.com/hyperjump/kaisetsu/internal/grounding"
	"github.com/hyperjump/kaisetsu/internal/history"
	"github.com/hyperjump/kaisetsu/internal/models"
	"github.com/hyperjump/kaisetsu/internal/watcher"
)

// Backend is the subset of backend operations the server forwards.
type Backend interface {
	Query(ctx context.Context, request *models.QueryRequest) (*models.QueryResult, error)
	Status(ctx context.Context, sessionID string) (*models.SessionStatus, error)
	WaitForReady(ctx context.Context, sessionID string) (*models.SessionStatus, error)
	Upload(ctx context.Context, paths []string) (*models.UploadResponse, error)
	Clear(ctx context.Context, indexID string) error
}

// Server is the local HTTP server exposing grounded queries and the archive.
type Server struct {
	backend Backend
	engine  *grounding.Engine
	archive *history.Archive
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server

	// watch endpoints are enabled when a watcher is attached
	watch         *watcher.Watcher
	watchConfig   *config.Config
	watchConfigMu sync.Mutex
	configPath    string
}

// NewServer creates a server with the given dependencies. archive may be nil
// to disable history endpoints.
func NewServer(
	backend Backend,
	eng *grounding.Engine,
	archive *history.Archive,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	if eng == nil {
		eng = grounding.NewEngine(nil)
	}
	return &Server{
		backend: backend,
		engine:  eng,
		archive: archive,
		config:  cfg,
		logger:  logger,
	}
}

// AttachWatcher enables the watch directory endpoints. When configPath is
// non-empty, directory changes are persisted back to the config file.
func (s *Server) AttachWatcher(w *watcher.Watcher, cfg *config.Config, configPath string) {
	s.watch = w
	s.watchConfig = cfg
	s.configPath = configPath
}

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(360 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/query", s.handleQuery)
	r.Post("/api/v1/upload", s.handleUpload)
	r.Post("/api/v1/upload-wait/{id}", s.handleUploadWait)
	r.Get("/api/v1/status/{id}", s.handleStatus)
	r.Post("/api/v1/clear", s.handleClear)
	r.Get("/api/v1/history", s.handleHistoryList)
	r.Get("/api/v1/history/search", s.handleHistorySearch)
	r.Get("/api/v1/history/{id}", s.handleHistoryGet)
	r.Get("/api/v1/watch/directories", s.handleWatchDirectoriesList)
	r.Post("/api/v1/watch/directories", s.handleWatchDirectoriesAdd)
	r.Delete("/api/v1/watch/directories", s.handleWatchDirectoriesRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

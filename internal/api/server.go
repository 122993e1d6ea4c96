package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dit-jay93/VersionManager/internal/config"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	registry *vfm.Registry
	engine   *vfm.Engine
	logger   vfm.Logger
}

// NewServer creates a new HTTP server with all routes configured
func NewServer(cfg config.ServerConfig, registry *vfm.Registry, engine *vfm.Engine, logger vfm.Logger) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		Server: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler: r,
		},
		router:   r,
		registry: registry,
		engine:   engine,
		logger:   logger,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))

		// Health check
		r.Get("/health", s.handleHealth)

		// Files
		r.Get("/files", s.handleListFiles)
		r.Post("/files", s.handleRegisterFile)
		r.Get("/files/{fileID}", s.handleGetFile)
		r.Delete("/files/{fileID}", s.handleDeleteFile)
		r.Post("/files/{fileID}/verify", s.handleVerifyFile)
		r.Patch("/files/{fileID}/favorite", s.handleSetFavorite)
		r.Patch("/files/{fileID}/archive", s.handleSetArchived)
		r.Patch("/files/{fileID}/name", s.handleRename)
		r.Patch("/files/{fileID}/project", s.handleAssignProject)
		r.Get("/files/{fileID}/metadata", s.handleGetMetadata)
		r.Put("/files/{fileID}/metadata", s.handleSetMetadata)

		// Versions
		r.Get("/files/{fileID}/versions", s.handleListVersions)
		r.Post("/files/{fileID}/versions", s.handleCreateVersion)
		r.Post("/files/{fileID}/versions/{number}/restore", s.handleRestoreVersion)
		r.Post("/files/{fileID}/versions/{number}/pin", s.handleTogglePin)
		r.Post("/files/{fileID}/versions/{number}/verify", s.handleVerifyBackup)

		// Tags
		r.Get("/tags", s.handleListTags)
		r.Get("/tags/{tagID}/files", s.handleListFilesByTag)
		r.Get("/files/{fileID}/tags", s.handleListFileTags)
		r.Post("/files/{fileID}/tags", s.handleAttachTag)
		r.Delete("/files/{fileID}/tags/{tagID}", s.handleDetachTag)

		// Events
		r.Get("/files/{fileID}/events", s.handleListEvents)

		// Projects
		r.Get("/projects", s.handleListProjects)
		r.Post("/projects", s.handleCreateProject)
		r.Get("/projects/{projectID}", s.handleGetProject)
		r.Put("/projects/{projectID}", s.handleUpdateProject)
		r.Delete("/projects/{projectID}", s.handleDeleteProject)

		// Batch operations
		r.Post("/verify-all", s.handleVerifyAll)
		r.Post("/relink", s.handleRelink)
	})
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

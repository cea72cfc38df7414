package server

import (
	"log/slog"
	"net/http"
	"time"

	"sourcing-dashboard/internal/cache"
	"sourcing-dashboard/internal/catalog"
	"sourcing-dashboard/internal/handlers"
)

type Server struct {
	catalog     *catalog.Catalog
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(cat *catalog.Catalog, evalCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		catalog:     cat,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(cat, evalCache, cacheTTL, logger),
		sseHandlers: handlers.NewSSEHandlers(cat, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes
	s.mux.HandleFunc("GET /", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/products", s.apiHandlers.HandleProducts)
	s.mux.HandleFunc("GET /api/products/{name}", s.apiHandlers.HandleProduct)
	s.mux.HandleFunc("POST /api/evaluate", s.apiHandlers.HandleEvaluate)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/products", s.sseHandlers.HandleProducts)
	s.mux.HandleFunc("GET /sse/evaluate", s.sseHandlers.HandleEvaluate)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sourcing-dashboard/internal/cache"
	"sourcing-dashboard/internal/catalog"
	"sourcing-dashboard/internal/config"
	"sourcing-dashboard/internal/middleware"
	"sourcing-dashboard/internal/migrations"
	"sourcing-dashboard/internal/observability"
	"sourcing-dashboard/internal/server"
	"sourcing-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	csvLoadTimeout = 30 * time.Second
	cacheMaxAge    = "public, max-age=300"
)

// Template handler functions that can access the template functions
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", cacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	db, err := catalog.OpenStore(cfg.Catalog.SQLitePath)
	if err != nil {
		logger.Error("failed to open catalog store", "error", err)
		os.Exit(1)
	}
	if err := migrations.Up(db); err != nil {
		logger.Error("failed to run catalog migrations", "error", err)
		os.Exit(1)
	}

	cat := catalog.New(db)
	ctx, cancel := context.WithTimeout(context.Background(), csvLoadTimeout)
	defer cancel()

	if err := cat.LoadFromCSV(ctx, cfg.Catalog.CSVFile); err != nil {
		logger.Error("failed to load catalog CSV", "error", err)
		os.Exit(1)
	}

	var evalCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.Cache.RedisAddr)
		defer redisCache.Close()
		evalCache = redisCache
		logger.Info("using redis evaluation cache", "addr", cfg.Cache.RedisAddr)
	} else {
		evalCache = cache.NewMemory()
		logger.Info("using in-memory evaluation cache")
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(cat, evalCache, cfg.Cache.TTL, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("closing catalog store")
		return db.Close()
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}

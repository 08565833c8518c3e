package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	projectapp "github.com/workplan/backend/internal/application/project"
	workpackageapp "github.com/workplan/backend/internal/application/workpackage"
	"github.com/workplan/backend/internal/infrastructure/cache"
	"github.com/workplan/backend/internal/infrastructure/config"
	"github.com/workplan/backend/internal/infrastructure/event"
	"github.com/workplan/backend/internal/infrastructure/logger"
	"github.com/workplan/backend/internal/infrastructure/persistence"
	"github.com/workplan/backend/internal/interfaces/http/handler"
	"github.com/workplan/backend/internal/interfaces/http/middleware"
	"github.com/workplan/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting workplan backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Outline cache: redis when reachable, in-memory otherwise
	cacheFactory := cache.NewOutlineCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithTTL(cfg.Cache.OutlineTTL),
	)
	outlineCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create outline cache", zap.Error(err))
	}
	defer func() {
		if err := outlineCache.Close(); err != nil {
			log.Error("Error closing outline cache", zap.Error(err))
		}
	}()

	// Repositories
	workPackageRepo := persistence.NewGormWorkPackageRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)

	// In-process event bus for domain events
	eventBus := event.NewInMemoryEventBus(log)

	// Application services
	workPackageService := workpackageapp.NewService(workPackageRepo, projectRepo,
		workpackageapp.WithEventPublisher(eventBus),
		workpackageapp.WithOutlineCache(outlineCache),
		workpackageapp.WithLogger(log),
	)
	bulkService := workpackageapp.NewBulkService(workPackageRepo, projectRepo,
		workpackageapp.WithBulkOutlineCache(outlineCache),
		workpackageapp.WithBulkLogger(log),
	)
	projectService := projectapp.NewService(projectRepo)

	// Validation errors report JSON field names
	middleware.SetupValidator()

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewHealthHandler(db, version))
	r.Register(handler.NewProjectHandler(projectService))
	r.Register(handler.NewWorkPackageHandler(workPackageService))
	r.Register(handler.NewBulkHandler(bulkService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

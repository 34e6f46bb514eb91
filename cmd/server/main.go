package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	bookingapp "github.com/tourops/backend/internal/application/booking"
	catalogapp "github.com/tourops/backend/internal/application/catalog"
	settlementapp "github.com/tourops/backend/internal/application/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"github.com/tourops/backend/internal/infrastructure/cache"
	"github.com/tourops/backend/internal/infrastructure/config"
	"github.com/tourops/backend/internal/infrastructure/logger"
	"github.com/tourops/backend/internal/infrastructure/persistence"
	"github.com/tourops/backend/internal/infrastructure/scheduler"
	"github.com/tourops/backend/internal/interfaces/http/handler"
	"github.com/tourops/backend/internal/interfaces/http/middleware"
	"github.com/tourops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
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

	log.Info("Starting TourOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	categoryRepo := persistence.NewGormTourItemCategoryRepository(db.DB)
	serviceItemRepo := persistence.NewGormServiceItemRepository(db.DB)
	patternRepo := persistence.NewGormCostPatternRepository(db.DB)
	financeRepo := persistence.NewGormFinanceRepository(db.DB)

	// Event dedup store: Redis when reachable, in-memory otherwise.
	// RequireRedis disables the fallback for multi-instance deployments.
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.Ingest.RequireRedis),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Post-commit hooks run after every finance or booking mutation, in
	// order: settlement sync first so the status resolver sees fresh
	// payment state.
	syncService := settlementapp.NewSyncService(bookingRepo, financeRepo, log)
	statusService := bookingapp.NewStatusService(bookingRepo, financeRepo, log)
	pipeline := settlementapp.NewPipeline(log, syncService.Hook(), statusService.Hook())

	// Initialize application services
	financeService := settlementapp.NewFinanceService(bookingRepo, financeRepo, patternRepo, categoryRepo, pipeline, log)
	catalogService := catalogapp.NewCatalogService(categoryRepo, serviceItemRepo, patternRepo)
	bookingService := bookingapp.NewBookingService(bookingRepo, pipeline, log)
	eventService := bookingapp.NewEventService(bookingRepo, idempotencyStore, shared.IdempotencyConfig{
		TTL:     cfg.Ingest.DedupTTL,
		Enabled: true,
	}, pipeline, log)

	// Periodic status resync catches date-driven transitions and re-drives
	// hooks that failed post-commit
	resyncScheduler := scheduler.NewStatusResyncScheduler(statusService, log, scheduler.StatusResyncSchedulerConfig{
		Enabled:    cfg.Scheduler.Enabled,
		Interval:   cfg.Scheduler.ResyncInterval,
		JobTimeout: cfg.Scheduler.JobTimeout,
	})
	if err := resyncScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start status resync scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer stopCancel()
		if err := resyncScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping status resync scheduler", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService, eventService, statusService)
	financeHandler := handler.NewFinanceHandler(financeService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(bookingHandler).
		Register(financeHandler).
		Register(catalogHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
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

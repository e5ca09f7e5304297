package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/custompos/backend/internal/application/catalog"
	posapp "github.com/custompos/backend/internal/application/pos"
	"github.com/custompos/backend/internal/infrastructure/auth"
	"github.com/custompos/backend/internal/infrastructure/cache"
	"github.com/custompos/backend/internal/infrastructure/config"
	"github.com/custompos/backend/internal/infrastructure/logger"
	"github.com/custompos/backend/internal/infrastructure/persistence"
	"github.com/custompos/backend/internal/infrastructure/storage"
	"github.com/custompos/backend/internal/infrastructure/telemetry"
	"github.com/custompos/backend/internal/interfaces/http/handler"
	"github.com/custompos/backend/internal/interfaces/http/middleware"
	"github.com/custompos/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Attach query tracing when enabled
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Load payload cache: Redis when configured, in-process otherwise
	var loadCache posapp.LoadCache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisLoadCache(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory load cache", zap.Error(err))
			loadCache = cache.NewInMemoryLoadCache()
		} else {
			loadCache = redisCache
			log.Info("Redis load cache connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
		}
	} else {
		loadCache = cache.NewInMemoryLoadCache()
	}

	// Object storage for brand logos
	var (
		objectStorage catalogapp.ObjectStorageService
		logoURLs      posapp.LogoURLProvider
	)
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithPresignExpiration(cfg.Loader.LogoURLExpiry))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Warn("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		logoURLs = s3Storage
		log.Info("Object storage enabled",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.Bucket),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Info("Object storage disabled, logo uploads return stub URLs")
	}

	// Initialize application services
	brandService := catalogapp.NewBrandService(brandRepo, productRepo)
	productService := catalogapp.NewProductService(productRepo, brandRepo)
	logoService := catalogapp.NewBrandLogoService(brandRepo, objectStorage)

	tokenService := auth.NewSessionTokenService(cfg.JWT)
	sessionService := posapp.NewSessionService(sessionRepo, tokenService)
	orderService := posapp.NewOrderService(orderRepo, sessionRepo, productRepo)
	loaderService := posapp.NewLoaderService(
		posapp.NewLoaderRegistry(),
		sessionRepo,
		productRepo,
		brandRepo,
		logoURLs,
		loadCache,
		posapp.WithCacheTTL(cfg.Loader.CacheTTL),
		posapp.WithLogoURLExpiry(cfg.Loader.LogoURLExpiry),
		posapp.WithMaxRecordCount(cfg.Loader.MaxRecordCount),
	)

	// Initialize HTTP handlers
	brandHandler := handler.NewBrandHandler(brandService, logoService, loaderService)
	productHandler := handler.NewProductHandler(productService, loaderService)
	sessionHandler := handler.NewSessionHandler(sessionService, loaderService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Record request spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.SecurityHeaders())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (brands, products). Back-office endpoints, no session
	// token required.
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")

	// Brand routes
	catalogRoutes.POST("/brands", brandHandler.Create)
	catalogRoutes.GET("/brands", brandHandler.List)
	catalogRoutes.GET("/brands/:id", brandHandler.GetByID)
	catalogRoutes.PUT("/brands/:id", brandHandler.Update)
	catalogRoutes.DELETE("/brands/:id", brandHandler.Delete)
	catalogRoutes.POST("/brands/:id/activate", brandHandler.Activate)
	catalogRoutes.POST("/brands/:id/deactivate", brandHandler.Deactivate)
	// Brand logo lifecycle (presigned upload, confirm, download, remove)
	catalogRoutes.POST("/brands/:id/logo/upload", brandHandler.InitiateLogoUpload)
	catalogRoutes.POST("/brands/:id/logo/confirm", brandHandler.ConfirmLogoUpload)
	catalogRoutes.GET("/brands/:id/logo", brandHandler.GetLogoDownloadURL)
	catalogRoutes.DELETE("/brands/:id/logo", brandHandler.RemoveLogo)

	// Product routes
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/code/:code", productHandler.GetByCode)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/brand", productHandler.SetBrand)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)

	// POS domain. Opening a session is the only public operation; it hands
	// out the token everything else requires.
	posRoutes := router.NewDomainGroup("pos", "/pos")
	posRoutes.POST("/sessions", sessionHandler.Open)

	posAuthed := posRoutes.Group("authed", "")
	posAuthed.Use(middleware.SessionAuth(tokenService))
	posAuthed.GET("/sessions", sessionHandler.List)
	posAuthed.GET("/sessions/:id", sessionHandler.GetByID)
	posAuthed.POST("/sessions/:id/close", sessionHandler.Close)
	// The payload is shared across sessions, so the route is not scoped
	// under /sessions/:id.
	posAuthed.GET("/load-data", sessionHandler.LoadData)

	// Order routes
	posAuthed.POST("/orders", orderHandler.Create)
	posAuthed.GET("/orders", orderHandler.List)
	posAuthed.GET("/orders/:id", orderHandler.GetByID)
	posAuthed.GET("/orders/:id/export", orderHandler.Export)
	posAuthed.POST("/orders/:id/pay", orderHandler.Pay)
	posAuthed.POST("/orders/:id/complete", orderHandler.Complete)
	posAuthed.POST("/orders/:id/cancel", orderHandler.Cancel)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(posRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

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

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/fintera-invest/docs" // Swagger docs
	"github.com/sjperalta/fintera-invest/internal/config"
	"github.com/sjperalta/fintera-invest/internal/handlers"
	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/middleware"
	"github.com/sjperalta/fintera-invest/internal/repository"
	"github.com/sjperalta/fintera-invest/internal/services"
	"github.com/sjperalta/fintera-invest/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Fintera Invest API
// @version 1.0
// @description Property-versus-bank investment projections
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8081
// @BasePath /api/v1
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis when configured; projections are cached in memory otherwise
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = repository.NewRedisClient(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory projection cache", "addr", cfg.RedisAddr, "error", err)
			rdb = nil
		} else {
			logger.Info("Connected to Redis", "addr", cfg.RedisAddr)
		}
	}

	// Initialize repositories
	repos := repository.NewRepositories(rdb)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	}

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, limiter)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg, limiter)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(middleware.RateLimit(limiter))
	}
	handlers.RegisterRoutes(v1, h)

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, limiter *middleware.RateLimiter) {
	// Drop expired cached projections every 5 minutes
	worker.ScheduleEvery(services.JobProjectionCacheCleanup, 5*time.Minute, func(ctx context.Context) error {
		logger.Debug("[Job] Cleaning projection cache...")
		return svcs.Projection.CleanCache(ctx)
	})

	// Forget idle rate limit clients every 10 minutes
	if limiter != nil {
		worker.ScheduleEvery(services.JobRateLimitCleanup, 10*time.Minute, func(ctx context.Context) error {
			if removed := limiter.Cleanup(); removed > 0 {
				logger.Debug("[Job] Removed idle rate limit clients", "removed", removed)
			}
			return nil
		})
	}

	logger.Info("Scheduled recurring jobs")
}

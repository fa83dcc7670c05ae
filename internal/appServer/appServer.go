// launching the server, postgres, redis and the Gemini client
package appServer

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nsinterior-dev/figment/config"
	repository "github.com/nsinterior-dev/figment/internal/database/postgres"
	cache "github.com/nsinterior-dev/figment/internal/database/redis"
	"github.com/nsinterior-dev/figment/internal/genai"
	"github.com/nsinterior-dev/figment/internal/pkg/preview"
	"github.com/nsinterior-dev/figment/internal/pkg/storage"
	"github.com/nsinterior-dev/figment/internal/service"
	"github.com/nsinterior-dev/figment/internal/transport"
	"github.com/nsinterior-dev/figment/internal/transport/middleware"
	"github.com/nsinterior-dev/figment/pkg/postgres"
	"github.com/nsinterior-dev/figment/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	generationRepo := repository.NewGenerationRepository(db)

	// Redis is optional: without it the service runs with no result cache
	// and an in-memory rate limit window.
	var cacheRepo *cache.CacheRepository
	if cfg.Redis.Enabled {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()

		cacheRepo = cache.NewCacheRepository(redisClient, cfg.App.CacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cacheRepo.Ping(ctx); err != nil {
			logrus.Errorf("Failed to connect to Redis: %v. Continuing without cache...", err)
			cacheRepo = nil
		} else {
			logrus.Info("Redis cache initialized")
		}
		cancel()
	}

	// A nil *CacheRepository must stay a nil interface downstream.
	var generationCache service.GenerationCache
	var cachePinger transport.Pinger
	if cacheRepo != nil {
		generationCache = cacheRepo
		cachePinger = cacheRepo
	}

	// Initialize the Gemini client and services
	generator := genai.NewClient(&cfg.Gemini)
	generationService := service.NewGenerationService(generationRepo, generationCache, generator,
		&service.GenerationServiceConfig{
			HistoryLimit: cfg.App.HistoryLimit,
			MaxImageSize: cfg.Upload.MaxSizeBytes,
		})

	fileStorage := storage.NewFileStorage(cfg.Upload.StoragePath)
	renderer := preview.NewRenderer()
	uploadService := service.NewUploadService(fileStorage, renderer,
		&service.UploadServiceConfig{
			PreviewWidth: cfg.Upload.PreviewWidth,
			MaxSizeBytes: cfg.Upload.MaxSizeBytes,
		})

	// Initialize handlers
	generationHandler := transport.NewGenerationHandler(generationService)
	uploadHandler := transport.NewUploadHandler(uploadService, cfg.App.BaseURL)
	healthHandler := transport.NewHealthHandler(db, cachePinger)
	limiter := middleware.NewRateLimiter(cacheRepo, cfg.App.RateLimitPerMin)

	// Setup HTTP server
	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		routes := transport.InitRoutes(generationHandler, uploadHandler, healthHandler, limiter, cfg.App.GenerateTimeoutS)
		if err := srv.Run(cfg, routes); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

package transport

import (
	"github.com/nsinterior-dev/figment/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(generationHandler *GenerationHandler, uploadHandler *UploadHandler, healthHandler *HealthHandler, limiter *middleware.RateLimiter, timeoutSeconds int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	api := router.Group("/api")
	if timeoutSeconds > 0 {
		api.Use(middleware.Timeout(timeoutSeconds))
	}

	// Only generation requests count against the rate limit; uploads are
	// cheap and stay unthrottled.
	generation := api.Group("")
	if limiter != nil {
		generation.Use(limiter.Limit())
	}
	generationHandler.RegisterRoutes(generation)
	uploadHandler.RegisterRoutes(api)

	router.GET("/health", healthHandler.Health)
	return router
}

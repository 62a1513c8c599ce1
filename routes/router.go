package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/middleware"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/routes/api_routes"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// allowedOrigins is the frontend URL plus any extra CORS_ORIGINS.
func allowedOrigins() []string {
	origins := []string{config.GetFrontendURL()}
	for _, o := range strings.Split(config.GetEnv("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// NewRouter builds the engine with every route registered under /api.
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"X-Cache", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", health)

	api := router.Group("/api")
	api_routes.SetupSearchRoutes(api)
	api_routes.SetupCatalogRoutes(api)
	api_routes.SetupAuthRoutes(api)
	api_routes.SetupAccountRoutes(api)
	api_routes.SetupAnalyticsRoutes(api)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Route not found"))
	})
	return router
}

// health pings whatever backends are configured.
func health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if config.DB != nil {
		if err := config.DB.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if config.Gorm != nil {
		if sqlDB, err := config.Gorm.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["gorm"] = "unreachable"
			healthy = false
		} else {
			checks["gorm"] = "ok"
		}
	}
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	message := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		message = "degraded"
	}
	c.JSON(status, gin.H{"status": message, "checks": checks})
}

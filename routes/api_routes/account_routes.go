package api_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/controllers/account_controller"
	"github.com/nomato-app/nomato-backend/controllers/analytics_controller"
	"github.com/nomato-app/nomato-backend/middleware"
)

// SetupAccountRoutes registers the signed-in user's endpoints.
func SetupAccountRoutes(router *gin.RouterGroup) {
	account := router.Group("/account")
	account.Use(middleware.AuthMiddleware())
	{
		account.GET("", account_controller.GetAccount)
		account.PATCH("", account_controller.UpdateAccount)
	}
}

// SetupAnalyticsRoutes registers POST /events.
func SetupAnalyticsRoutes(router *gin.RouterGroup) {
	router.POST("/events", middleware.OptionalAuth(), analytics_controller.CaptureEvent)
}

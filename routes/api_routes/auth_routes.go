package api_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/controllers/auth_controller"
	"github.com/nomato-app/nomato-backend/middleware"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Google OAuth routes
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)
		auth.POST("/google/token", auth_controller.GoogleToken)

		// Magic link; sending mail is limited harder than the rest
		auth.POST("/email", middleware.RateLimiter(5, 15*time.Minute), auth_controller.EmailSignIn)
		auth.GET("/email/callback", auth_controller.EmailCallback)

		// Email and password
		auth.POST("/register", middleware.RateLimiter(10, time.Hour), auth_controller.Register)
		auth.POST("/login", middleware.RateLimiter(20, 15*time.Minute), auth_controller.Login)

		auth.GET("/session", middleware.OptionalAuth(), auth_controller.GetSession)
		auth.POST("/logout", auth_controller.Logout)
	}
}

package api_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/controllers/search_controller"
	"github.com/nomato-app/nomato-backend/middleware"
)

// SetupSearchRoutes registers GET /getSearch, limited to 60 requests per
// minute per client.
func SetupSearchRoutes(router *gin.RouterGroup) {
	router.GET("/getSearch", middleware.RateLimiter(60, time.Minute), search_controller.GetSearch)
}
